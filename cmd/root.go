/*
Package cmd implements the command-line interface for the mem0-mcp bridge.
It wires configuration, logging and the serve commands together.
*/
package cmd

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/mem0-mcp/pkg/logging"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "mem0-mcp"
	cfgFile     string

	rootCmd = &cobra.Command{
		Use:   "mem0-mcp",
		Short: "An MCP bridge exposing the Mem0 memory platform as callable tools",
		Long:  longRoot,
	}
)

/*
Execute is the main entry point for the mem0-mcp CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)
}

/*
initConfig loads the environment and configuration. A .env file is honoured
when present, the embedded default config is written to the user's home
directory on first run, and MEM0_API_KEY from the environment always wins
over the config file.
*/
func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "error", err)
	}

	if err := writeConfig(); err != nil {
		log.Fatal(err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(home + "/." + projectName)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	if apiKey := os.Getenv("MEM0_API_KEY"); apiKey != "" {
		viper.Set("mem0.api_key", apiKey)
	}

	logging.SetLevel(viper.GetString("log.level"))
}

/*
writeConfig writes the default config file to the user's home directory when
it does not exist yet.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		buf     bytes.Buffer
	)

	configDir := home + "/." + projectName
	if !checkFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := configDir + "/" + cfgFile
	if checkFileExists(fullPath) {
		return nil
	}

	fh, err := embedded.Open("cfg/" + cfgFile)
	if err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}
	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote default config", "path", fullPath)
	return nil
}

func checkFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
mem0-mcp bridges the Mem0 memory platform to any MCP-capable host.

It exposes memory operations (add, search, list, update, delete, count),
specialized memory types (short-term, episodic, semantic, procedural),
selective storage with include/exclude patterns, project configuration and
graph relation queries as a fixed set of MCP tools.

Configuration lives in $HOME/.mem0-mcp/config.yml; the MEM0_API_KEY
environment variable (or a .env file) supplies the platform API key.
`
