package mem0

// Message is a single conversational turn submitted to the add endpoint. The
// platform extracts memories from the message content; a bare text add is
// wrapped as a single user message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AddRequest is the canonical shape for every add operation, regardless of
// which tool produced it. Optional fields marshal to nothing when unset so the
// remote API applies its own defaults.
type AddRequest struct {
	Messages       []Message      `json:"messages"`
	UserID         string         `json:"user_id"`
	AgentID        string         `json:"agent_id,omitempty"`
	RunID          string         `json:"run_id,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	EnableGraph    bool           `json:"enable_graph,omitempty"`
	Timestamp      int64          `json:"timestamp,omitempty"`
	ExpirationDate string         `json:"expiration_date,omitempty"`

	// OutputFormat and Version are API compatibility switches. Graph-enabled
	// requests require output_format v1.1; all requests use the v2 add API.
	OutputFormat string `json:"output_format,omitempty"`
	Version      string `json:"version,omitempty"`
}

// Text returns the content of the first message, which is where canonical
// requests carry the raw text of an add operation.
func (r *AddRequest) Text() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].Content
}

// SearchRequest is the canonical shape for semantic search and graph-relation
// queries. Filters is an arbitrarily nested structured predicate.
type SearchRequest struct {
	Query        string         `json:"query"`
	UserID       string         `json:"user_id"`
	AgentID      string         `json:"agent_id,omitempty"`
	RunID        string         `json:"run_id,omitempty"`
	Filters      map[string]any `json:"filters,omitempty"`
	Threshold    *float64       `json:"threshold,omitempty"`
	EnableGraph  bool           `json:"enable_graph,omitempty"`
	OutputFormat string         `json:"output_format,omitempty"`
}

// ListRequest is the canonical shape for get-all and count operations.
// Page/PageSize and Limit are alternative retrieval strategies; the
// normalizer guarantees only one of them is populated.
type ListRequest struct {
	UserID      string         `json:"user_id,omitempty"`
	AgentID     string         `json:"agent_id,omitempty"`
	RunID       string         `json:"run_id,omitempty"`
	Filters     map[string]any `json:"filters,omitempty"`
	Page        int            `json:"page,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
	Limit       int            `json:"limit,omitempty"`
	EnableGraph bool           `json:"enable_graph,omitempty"`

	// Graph-enabled list calls require output_format v1.1, same as add and
	// search.
	OutputFormat string `json:"output_format,omitempty"`
}

// Record is a memory as the remote store returns it. The store owns the
// record lifecycle; this bridge only relays it.
type Record struct {
	ID        string         `json:"id"`
	Memory    string         `json:"memory"`
	UserID    string         `json:"user_id,omitempty"`
	AgentID   string         `json:"agent_id,omitempty"`
	RunID     string         `json:"run_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Score     float64        `json:"score,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// Relation is a single edge from the knowledge graph, present in graph-enabled
// responses.
type Relation struct {
	Source       string `json:"source"`
	Relationship string `json:"relationship"`
	Target       string `json:"target"`
}

// AddResponse is the remote payload for an add call. An empty Results slice on
// a successful status is the "silent empty result" failure mode; the dispatch
// layer surfaces it as an AmbiguousEmptyResultError.
type AddResponse struct {
	Results   []Record   `json:"results"`
	Relations []Relation `json:"relations,omitempty"`
}

// SearchResponse is the remote payload for a search call.
type SearchResponse struct {
	Results   []Record   `json:"results"`
	Relations []Relation `json:"relations,omitempty"`
}

// Page is the remote payload for paginated list calls. Count is the total
// number of matching records, not the page length, which is what the count
// tool relies on.
type Page struct {
	Count     int        `json:"count"`
	Results   []Record   `json:"results"`
	Relations []Relation `json:"relations,omitempty"`
}

// ProjectSettings is the process-wide configuration held by the remote store.
type ProjectSettings struct {
	CustomCategories   []map[string]string `json:"custom_categories,omitempty"`
	CustomInstructions string              `json:"custom_instructions,omitempty"`
}

// ProjectPatch is a partial update to the project settings. Pointer fields
// distinguish "leave unchanged" from "clear".
type ProjectPatch struct {
	CustomCategories   []map[string]string `json:"custom_categories,omitempty"`
	CustomInstructions *string             `json:"custom_instructions,omitempty"`
}

// FeedbackRequest reports retrieval quality for a single memory.
type FeedbackRequest struct {
	MemoryID string `json:"memory_id"`
	Feedback string `json:"feedback"`
	Comments string `json:"comments,omitempty"`
}
