package tools

// This file declares the MCP tool surface of the bridge: schemas only, no
// execution logic. The matching handlers live in dispatch.go.

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func buildAddMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"add_memory",
		mcp.WithDescription("Stores a memory for a user. Optional includes/excludes patterns filter the text locally before it is submitted."),
		mcp.WithString("text",
			mcp.Description("Content to store as a memory"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User to associate the memory with"),
			mcp.Required(),
		),
		mcp.WithString("agent_id",
			mcp.Description("Optional agent identifier"),
		),
		mcp.WithString("run_id",
			mcp.Description("Optional session identifier"),
		),
		mcp.WithObject("metadata",
			mcp.Description("Arbitrary JSON metadata to attach to the memory"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Enable knowledge graph extraction for this memory"),
		),
		mcp.WithString("includes",
			mcp.Description("Pattern for text spans to keep; only matching spans are stored"),
		),
		mcp.WithString("excludes",
			mcp.Description("Pattern for text spans to remove before storing"),
		),
		mcp.WithNumber("timestamp",
			mcp.Description("Unix timestamp (seconds) overriding the creation time"),
		),
		mcp.WithString("expiration_date",
			mcp.Description("ISO-8601 date after which the memory expires"),
		),
	)
}

func buildAddShortTermMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"add_short_term_memory",
		mcp.WithDescription("Stores session-scoped short-term memory. Requires a run_id so the memory stays bound to the session."),
		mcp.WithString("text",
			mcp.Description("Content to store"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User to associate the memory with"),
			mcp.Required(),
		),
		mcp.WithString("run_id",
			mcp.Description("Session identifier the memory belongs to"),
			mcp.Required(),
		),
		mcp.WithString("memory_type",
			mcp.Description("Short-term subtype – 'conversation' (recent messages), 'working' (temporary state) or 'attention' (current focus)"),
			mcp.Enum("conversation", "working", "attention"),
		),
		mcp.WithObject("metadata",
			mcp.Description("Arbitrary JSON metadata to attach to the memory"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Enable knowledge graph extraction"),
		),
	)
}

func buildAddEpisodicMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"add_episodic_memory",
		mcp.WithDescription("Stores an episodic memory – a specific event or experience."),
		mcp.WithString("text",
			mcp.Description("Content to store"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User to associate the memory with"),
			mcp.Required(),
		),
		mcp.WithString("event_date",
			mcp.Description("When the event occurred, e.g. '2023-05-15'"),
		),
		mcp.WithObject("metadata",
			mcp.Description("Arbitrary JSON metadata to attach to the memory"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Enable knowledge graph extraction"),
		),
	)
}

func buildAddSemanticMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"add_semantic_memory",
		mcp.WithDescription("Stores a semantic memory – a fact or preference. Graph extraction is on by default for semantic memories."),
		mcp.WithString("text",
			mcp.Description("Content to store"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User to associate the memory with"),
			mcp.Required(),
		),
		mcp.WithString("category",
			mcp.Description("Kind of fact, e.g. 'preference', 'personal_info', 'knowledge'"),
		),
		mcp.WithObject("metadata",
			mcp.Description("Arbitrary JSON metadata to attach to the memory"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Knowledge graph extraction (default true for semantic memories)"),
		),
	)
}

func buildAddProceduralMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"add_procedural_memory",
		mcp.WithDescription("Stores a procedural memory – a skill, habit or workflow."),
		mcp.WithString("text",
			mcp.Description("Content to store"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User to associate the memory with"),
			mcp.Required(),
		),
		mcp.WithString("skill_area",
			mcp.Description("Area of skill or habit, e.g. 'coding', 'communication'"),
		),
		mcp.WithObject("metadata",
			mcp.Description("Arbitrary JSON metadata to attach to the memory"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Enable knowledge graph extraction"),
		),
	)
}

func buildAddMemorySelectiveTool() mcp.Tool {
	return mcp.NewTool(
		"add_memory_selective",
		mcp.WithDescription("Stores a memory after filtering the text with include/exclude patterns. Includes takes precedence: only matching spans are kept, then exclusions are removed from that subset."),
		mcp.WithString("text",
			mcp.Description("Content to filter and store"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User to associate the memory with"),
			mcp.Required(),
		),
		mcp.WithString("includes",
			mcp.Description("Pattern for text spans to keep"),
		),
		mcp.WithString("excludes",
			mcp.Description("Pattern for text spans to remove"),
		),
		mcp.WithObject("metadata",
			mcp.Description("Arbitrary JSON metadata to attach to the memory"),
		),
		mcp.WithString("run_id",
			mcp.Description("Optional session identifier"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Enable knowledge graph extraction"),
		),
	)
}

func buildSearchMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"search_memory",
		mcp.WithDescription("Searches a user's memories semantically. Filters is a structured predicate, e.g. '{\"categories\": [\"work\"]}'; memory_duration and memory_type are shorthand metadata filters."),
		mcp.WithString("query",
			mcp.Description("Natural language query"),
			mcp.Required(),
		),
		mcp.WithString("user_id",
			mcp.Description("User whose memories are searched"),
			mcp.Required(),
		),
		mcp.WithString("agent_id",
			mcp.Description("Optional agent scoping"),
		),
		mcp.WithString("run_id",
			mcp.Description("Optional session scoping"),
		),
		mcp.WithObject("filters",
			mcp.Description("Structured predicate scoping the search; also accepted as a JSON-encoded string"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity score between 0.0 and 1.0"),
		),
		mcp.WithString("memory_duration",
			mcp.Description("Shorthand filter on memory duration"),
			mcp.Enum("short_term", "long_term"),
		),
		mcp.WithString("memory_type",
			mcp.Description("Shorthand filter on memory type"),
			mcp.Enum("conversation", "working", "attention", "episodic", "semantic", "procedural"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Include graph relations in the results"),
		),
	)
}

func buildGetAllMemoriesTool() mcp.Tool {
	return mcp.NewTool(
		"get_all_memories",
		mcp.WithDescription("Lists memories, optionally scoped by user/agent/run. Use page/page_size for pagination; limit is an alternative capped fetch and is ignored when pagination is present."),
		mcp.WithString("user_id",
			mcp.Description("Optional user scoping"),
		),
		mcp.WithString("agent_id",
			mcp.Description("Optional agent scoping"),
		),
		mcp.WithString("run_id",
			mcp.Description("Optional session scoping"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, starting at 1"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Number of records per page"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records when not paginating"),
		),
		mcp.WithBoolean("enable_graph",
			mcp.Description("Include graph context"),
		),
	)
}

func buildGetMemoryByIDTool() mcp.Tool {
	return mcp.NewTool(
		"get_memory_by_id",
		mcp.WithDescription("Retrieves a single memory by its id."),
		mcp.WithString("memory_id",
			mcp.Description("Memory id to retrieve"),
			mcp.Required(),
		),
	)
}

func buildUpdateMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"update_memory",
		mcp.WithDescription("Replaces the text of an existing memory."),
		mcp.WithString("memory_id",
			mcp.Description("Memory id to update"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("New content for the memory"),
			mcp.Required(),
		),
	)
}

func buildDeleteMemoryTool() mcp.Tool {
	return mcp.NewTool(
		"delete_memory",
		mcp.WithDescription("Deletes a memory by its id."),
		mcp.WithString("memory_id",
			mcp.Description("Memory id to delete"),
			mcp.Required(),
		),
	)
}

func buildCountMemoriesTool() mcp.Tool {
	return mcp.NewTool(
		"count_memories",
		mcp.WithDescription("Counts a user's memories, optionally narrowed by a structured predicate."),
		mcp.WithString("user_id",
			mcp.Description("User whose memories are counted"),
			mcp.Required(),
		),
		mcp.WithObject("filters",
			mcp.Description("Structured predicate narrowing the count; also accepted as a JSON-encoded string"),
		),
	)
}

func buildUpdateCategoriesTool() mcp.Tool {
	return mcp.NewTool(
		"update_categories",
		mcp.WithDescription("Replaces the project's custom memory categories. Provide a list of {name: description} objects; these replace the platform defaults."),
		mcp.WithArray("custom_categories",
			mcp.Description("Custom categories as {name: description} objects"),
			mcp.Required(),
		),
		mcp.WithString("explanation",
			mcp.Description("Optional note documenting why the categories changed"),
		),
	)
}

func buildGetCategoriesTool() mcp.Tool {
	return mcp.NewTool(
		"get_categories",
		mcp.WithDescription("Reads the project's current custom memory categories, or reports that the platform defaults are in use."),
	)
}

func buildSetInstructionsTool() mcp.Tool {
	return mcp.NewTool(
		"set_instructions",
		mcp.WithDescription("Sets the project-level instructions that guide how memories are extracted from conversations."),
		mcp.WithString("instructions",
			mcp.Description("Extraction guidelines for the project"),
			mcp.Required(),
		),
		mcp.WithString("explanation",
			mcp.Description("Optional note documenting the purpose of the instructions"),
		),
	)
}

func buildGetInstructionsTool() mcp.Tool {
	return mcp.NewTool(
		"get_instructions",
		mcp.WithDescription("Reads the project's current custom extraction instructions."),
	)
}

func buildGetGraphRelationsTool() mcp.Tool {
	return mcp.NewTool(
		"get_graph_relations",
		mcp.WithDescription("Finds knowledge graph relationships connected to an entity, e.g. \"Python\" -> \"has library\" -> \"TensorFlow\"."),
		mcp.WithString("user_id",
			mcp.Description("User whose graph is queried"),
			mcp.Required(),
		),
		mcp.WithString("entity",
			mcp.Description("Entity to find relationships for"),
			mcp.Required(),
		),
		mcp.WithString("relation_type",
			mcp.Description("Optional filter on the relation type"),
		),
	)
}

func buildSendFeedbackTool() mcp.Tool {
	return mcp.NewTool(
		"send_feedback",
		mcp.WithDescription("Reports retrieval quality for a memory so the store can improve future results."),
		mcp.WithString("memory_id",
			mcp.Description("Memory the feedback is about"),
			mcp.Required(),
		),
		mcp.WithString("feedback_type",
			mcp.Description("Kind of feedback"),
			mcp.Enum("helpful", "not_helpful", "irrelevant", "outdated", "incomplete"),
			mcp.Required(),
		),
		mcp.WithString("comments",
			mcp.Description("Optional free-form comments"),
		),
	)
}
