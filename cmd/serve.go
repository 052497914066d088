package cmd

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/mem0-mcp/pkg/logging"
	"github.com/theapemachine/mem0-mcp/pkg/mem0"
	"github.com/theapemachine/mem0-mcp/pkg/service/sse"
	"github.com/theapemachine/mem0-mcp/pkg/tools"
)

var (
	addrFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the memory bridge",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout belongs to the protocol; logs go to a file.
			if err := logging.ToFile(viper.GetString("log.file")); err != nil {
				return err
			}
			defer logging.Close()

			dispatcher, err := newDispatcher()
			if err != nil {
				return err
			}

			srv := server.NewMCPServer(
				"mem0-mcp",
				"1.0.0",
				server.WithLogging(),
				server.WithToolCapabilities(true),
			)
			dispatcher.Register(srv)

			return server.ServeStdio(srv)
		},
	}

	sseCmd = &cobra.Command{
		Use:   "sse",
		Short: "Serve MCP over SSE",
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := newDispatcher()
			if err != nil {
				return err
			}

			addr := addrFlag
			if addr == "" {
				addr = viper.GetString("server.sse_addr")
			}

			log.Info("serving MCP over SSE", "addr", addr)
			return sse.NewMCPBroker(dispatcher).Start(addr)
		},
	}
)

func newDispatcher() (*tools.Dispatcher, error) {
	apiKey := viper.GetString("mem0.api_key")
	if apiKey == "" {
		return nil, errors.New("memory platform API key not configured; set MEM0_API_KEY or mem0.api_key")
	}

	client := mem0.NewClient(mem0.Config{
		BaseURL:   viper.GetString("mem0.base_url"),
		APIKey:    apiKey,
		OrgID:     viper.GetString("mem0.org_id"),
		ProjectID: viper.GetString("mem0.project_id"),
	})

	return tools.NewDispatcher(client), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.AddCommand(stdioCmd)
	serveCmd.AddCommand(sseCmd)

	sseCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address for the SSE server")
}

var longServe = `
Serve the memory bridge over one of the supported MCP transports.

  mem0-mcp serve stdio    for hosts that spawn the bridge as a subprocess
  mem0-mcp serve sse      for hosts that connect over HTTP
`
