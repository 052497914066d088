package tools

// This file implements the dispatch core: a declarative registry mapping each
// tool name to its normalizer/mapper path and the remote operation it issues.
// Every dispatch is stateless and performs at most one remote call.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/theapemachine/mem0-mcp/pkg/mem0"
	"github.com/theapemachine/mem0-mcp/pkg/memory"
)

// MemoryStore is the remote collaborator every tool ultimately calls. It is
// satisfied by *mem0.Client; tests substitute a fake.
type MemoryStore interface {
	Add(ctx context.Context, req *mem0.AddRequest) (*mem0.AddResponse, error)
	Search(ctx context.Context, req *mem0.SearchRequest) (*mem0.SearchResponse, error)
	GetAll(ctx context.Context, req *mem0.ListRequest) (*mem0.Page, error)
	Get(ctx context.Context, memoryID string) (*mem0.Record, error)
	Update(ctx context.Context, memoryID, text string) (*mem0.Record, error)
	Delete(ctx context.Context, memoryID string) error
	Project(ctx context.Context) (*mem0.ProjectSettings, error)
	UpdateProject(ctx context.Context, patch *mem0.ProjectPatch) error
	Feedback(ctx context.Context, req *mem0.FeedbackRequest) error
}

// handlerFunc runs one tool call against the store and returns the structured
// result payload.
type handlerFunc func(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error)

type toolEntry struct {
	tool    mcp.Tool
	handler handlerFunc
}

// Dispatcher routes tool calls to their handlers. It holds no mutable state
// beyond the store reference, so concurrent dispatches need no locking.
type Dispatcher struct {
	store    MemoryStore
	registry map[string]toolEntry
}

// NewDispatcher builds the fixed tool registry around the given store.
func NewDispatcher(store MemoryStore) *Dispatcher {
	d := &Dispatcher{store: store}

	d.registry = map[string]toolEntry{
		"add_memory":            {buildAddMemoryTool(), addHandler(memory.TagGeneric, "")},
		"add_short_term_memory": {buildAddShortTermMemoryTool(), handleAddShortTerm},
		"add_episodic_memory":   {buildAddEpisodicMemoryTool(), addHandler(memory.TagEpisodic, "event_date")},
		"add_semantic_memory":   {buildAddSemanticMemoryTool(), addHandler(memory.TagSemantic, "category")},
		"add_procedural_memory": {buildAddProceduralMemoryTool(), addHandler(memory.TagProcedural, "skill_area")},
		"add_memory_selective":  {buildAddMemorySelectiveTool(), handleAddSelective},
		"search_memory":         {buildSearchMemoryTool(), handleSearch},
		"get_all_memories":      {buildGetAllMemoriesTool(), handleGetAll},
		"get_memory_by_id":      {buildGetMemoryByIDTool(), handleGetByID},
		"update_memory":         {buildUpdateMemoryTool(), handleUpdate},
		"delete_memory":         {buildDeleteMemoryTool(), handleDelete},
		"count_memories":        {buildCountMemoriesTool(), handleCount},
		"update_categories":     {buildUpdateCategoriesTool(), handleUpdateCategories},
		"get_categories":        {buildGetCategoriesTool(), handleGetCategories},
		"set_instructions":      {buildSetInstructionsTool(), handleSetInstructions},
		"get_instructions":      {buildGetInstructionsTool(), handleGetInstructions},
		"get_graph_relations":   {buildGetGraphRelationsTool(), handleGraphRelations},
		"send_feedback":         {buildSendFeedbackTool(), handleSendFeedback},
	}

	return d
}

// Dispatch routes a tool call by name. Validation failures and unknown tools
// resolve locally; only a fully normalized request ever reaches the store.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	entry, ok := d.registry[name]
	if !ok {
		return nil, &memory.UnknownToolError{Tool: name}
	}

	result, err := entry.handler(ctx, d.store, args)
	if err != nil {
		log.Error("tool call failed", "tool", name, "error", err)
		return nil, err
	}

	return result, nil
}

// Register attaches every tool in the registry to the MCP server.
func (d *Dispatcher) Register(srv *server.MCPServer) {
	for name, entry := range d.registry {
		srv.AddTool(entry.tool, d.adapt(name))
	}
}

// adapt bridges a registry entry to the MCP handler signature. Typed errors
// become tool-level errors carrying the offending parameter or tool name;
// the protocol layer above never sees a bare empty success.
func (d *Dispatcher) adapt(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := d.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result for %s: %w", name, err)
		}
		return mcp.NewToolResultText(string(encoded)), nil
	}
}

// ---------------------------------------------------------------------------
// Add handlers
// ---------------------------------------------------------------------------

// addHandler builds the handler for the typed add tools. extraArg names the
// tag-specific optional argument (event_date, category, skill_area).
func addHandler(tag memory.Tag, extraArg string) handlerFunc {
	return func(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
		params, err := memory.AddParams(args)
		if err != nil {
			return nil, err
		}
		if extraArg != "" {
			params.Extra, _ = args[extraArg].(string)
		}

		req, err := memory.MapToCanonical(tag, params)
		if err != nil {
			return nil, err
		}

		return submitAdd(ctx, store, req, params)
	}
}

func handleAddShortTerm(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	subtype, _ := args["memory_type"].(string)
	tag, err := memory.ShortTermTag(subtype)
	if err != nil {
		return nil, err
	}

	params, err := memory.AddParams(args)
	if err != nil {
		return nil, err
	}

	req, err := memory.MapToCanonical(tag, params)
	if err != nil {
		return nil, err
	}

	return submitAdd(ctx, store, req, params)
}

func handleAddSelective(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	params, err := memory.AddParams(args)
	if err != nil {
		return nil, err
	}

	req, err := memory.MapToCanonical(memory.TagSelective, params)
	if err != nil {
		return nil, err
	}

	result, err := submitAdd(ctx, store, req, params)
	if err != nil || result["status"] != "success" {
		return result, err
	}

	result["original_length"] = len(params.Text)
	result["processed_length"] = len(req.Text())
	return result, nil
}

// submitAdd issues the single remote add call, short-circuiting with a
// warning when pattern filtering left nothing to store, and flagging the
// store's silent-empty failure mode instead of passing it through as success.
func submitAdd(ctx context.Context, store MemoryStore, req *mem0.AddRequest, params memory.TypeParams) (map[string]any, error) {
	if strings.TrimSpace(req.Text()) == "" {
		log.Warn("no text remained after applying filters", "user_id", params.UserID)
		return map[string]any{
			"status":  "warning",
			"message": "no text remained after applying filters",
		}, nil
	}

	resp, err := store.Add(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, &mem0.AmbiguousEmptyResultError{Op: "add"}
	}

	result := map[string]any{
		"status":  "success",
		"details": resp.Results,
	}
	if len(resp.Relations) > 0 {
		result["relations"] = resp.Relations
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Read/search handlers
// ---------------------------------------------------------------------------

func handleSearch(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	req, err := memory.NormalizeSearch(args)
	if err != nil {
		return nil, err
	}

	resp, err := store.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	// Zero matches on a validated query is a legitimate empty result, not the
	// silent-empty failure mode of a write.
	result := map[string]any{
		"status":  "success",
		"results": resp.Results,
	}
	if len(resp.Relations) > 0 {
		result["relations"] = resp.Relations
	}
	return result, nil
}

func handleGetAll(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	req, err := memory.NormalizeList(args)
	if err != nil {
		return nil, err
	}

	page, err := store.GetAll(ctx, req)
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"status":   "success",
		"count":    page.Count,
		"memories": page.Results,
	}
	if len(page.Relations) > 0 {
		result["relations"] = page.Relations
	}
	return result, nil
}

func handleGetByID(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	memoryID, err := memory.RequireString(args, "memory_id")
	if err != nil {
		return nil, err
	}

	rec, err := store.Get(ctx, memoryID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status": "success",
		"memory": rec,
	}, nil
}

func handleCount(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	req, err := memory.NormalizeCount(args)
	if err != nil {
		return nil, err
	}

	page, err := store.GetAll(ctx, req)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status": "success",
		"count":  page.Count,
	}, nil
}

// ---------------------------------------------------------------------------
// Write handlers
// ---------------------------------------------------------------------------

func handleUpdate(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	memoryID, err := memory.RequireString(args, "memory_id")
	if err != nil {
		return nil, err
	}
	text, err := memory.RequireString(args, "text")
	if err != nil {
		return nil, err
	}

	rec, err := store.Update(ctx, memoryID, text)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":  "success",
		"details": rec,
	}, nil
}

func handleDelete(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	memoryID, err := memory.RequireString(args, "memory_id")
	if err != nil {
		return nil, err
	}

	if err := store.Delete(ctx, memoryID); err != nil {
		return nil, err
	}

	return map[string]any{
		"status":    "success",
		"memory_id": memoryID,
	}, nil
}

// ---------------------------------------------------------------------------
// Project configuration handlers (read-through/write-through, no local cache)
// ---------------------------------------------------------------------------

func handleUpdateCategories(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	categories, err := categoriesArg(args)
	if err != nil {
		return nil, err
	}

	if err := store.UpdateProject(ctx, &mem0.ProjectPatch{CustomCategories: categories}); err != nil {
		return nil, err
	}

	explanation, _ := args["explanation"].(string)
	if explanation == "" {
		explanation = "custom categories updated"
	}
	return map[string]any{
		"status":      "success",
		"explanation": explanation,
	}, nil
}

func handleGetCategories(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	settings, err := store.Project(ctx)
	if err != nil {
		return nil, err
	}

	if len(settings.CustomCategories) > 0 {
		return map[string]any{
			"status":            "success",
			"custom_categories": settings.CustomCategories,
			"using_default":     false,
		}, nil
	}

	return map[string]any{
		"status":             "success",
		"custom_categories":  nil,
		"using_default":      true,
		"default_categories": defaultCategories,
	}, nil
}

func handleSetInstructions(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	instructions, err := memory.RequireString(args, "instructions")
	if err != nil {
		return nil, err
	}

	if err := store.UpdateProject(ctx, &mem0.ProjectPatch{CustomInstructions: &instructions}); err != nil {
		return nil, err
	}

	explanation, _ := args["explanation"].(string)
	if explanation == "" {
		explanation = "custom instructions set"
	}
	return map[string]any{
		"status":      "success",
		"explanation": explanation,
	}, nil
}

func handleGetInstructions(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	settings, err := store.Project(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":                  "success",
		"custom_instructions":     settings.CustomInstructions,
		"has_custom_instructions": settings.CustomInstructions != "",
	}, nil
}

// ---------------------------------------------------------------------------
// Graph and feedback handlers
// ---------------------------------------------------------------------------

func handleGraphRelations(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	userID, err := memory.RequireString(args, "user_id")
	if err != nil {
		return nil, err
	}
	entity, err := memory.RequireString(args, "entity")
	if err != nil {
		return nil, err
	}

	filters := map[string]any{"entity": entity}
	if relationType, _ := args["relation_type"].(string); relationType != "" {
		filters["relation_type"] = relationType
	}

	resp, err := store.Search(ctx, &mem0.SearchRequest{
		Query:        entity,
		UserID:       userID,
		Filters:      filters,
		EnableGraph:  true,
		OutputFormat: "v1.1",
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":    "success",
		"entity":    entity,
		"relations": resp.Relations,
		"results":   resp.Results,
	}, nil
}

func handleSendFeedback(ctx context.Context, store MemoryStore, args map[string]any) (map[string]any, error) {
	req, err := memory.NormalizeFeedback(args)
	if err != nil {
		return nil, err
	}

	if err := store.Feedback(ctx, req); err != nil {
		return nil, err
	}

	return map[string]any{
		"status":        "success",
		"memory_id":     req.MemoryID,
		"feedback_type": req.Feedback,
	}, nil
}

// defaultCategories mirrors the platform's built-in category set, reported
// when no custom categories are configured.
var defaultCategories = []string{
	"personal_details", "family", "professional_details",
	"sports", "travel", "food", "music", "health",
	"technology", "hobbies", "fashion", "entertainment",
	"milestones", "user_preferences", "misc",
}

// categoriesArg coerces the custom_categories argument, which may arrive as a
// list of objects or as a JSON-encoded string.
func categoriesArg(args map[string]any) ([]map[string]string, error) {
	const reason = "must be a non-empty list of {name: description} objects"

	raw, ok := args["custom_categories"]
	if !ok || raw == nil {
		return nil, &memory.ValidationError{Param: "custom_categories", Reason: "required"}
	}

	switch v := raw.(type) {
	case []any:
		categories := make([]map[string]string, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, &memory.ValidationError{Param: "custom_categories", Reason: reason}
			}
			category := make(map[string]string, len(obj))
			for name, description := range obj {
				text, ok := description.(string)
				if !ok {
					return nil, &memory.ValidationError{Param: "custom_categories", Reason: reason}
				}
				category[name] = text
			}
			categories = append(categories, category)
		}
		if len(categories) == 0 {
			return nil, &memory.ValidationError{Param: "custom_categories", Reason: reason}
		}
		return categories, nil
	case string:
		var categories []map[string]string
		if err := json.Unmarshal([]byte(v), &categories); err != nil || len(categories) == 0 {
			return nil, &memory.ValidationError{Param: "custom_categories", Reason: reason}
		}
		return categories, nil
	default:
		return nil, &memory.ValidationError{Param: "custom_categories", Reason: reason}
	}
}
