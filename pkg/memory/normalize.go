package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/cohesivestack/valgo"

	"github.com/theapemachine/mem0-mcp/pkg/mem0"
)

// FeedbackTypes is the accepted vocabulary for the feedback tool.
var FeedbackTypes = []string{"helpful", "not_helpful", "irrelevant", "outdated", "incomplete"}

// RequireString extracts a mandatory string argument.
func RequireString(args map[string]any, key string) (string, error) {
	if s := argString(args, key); s != "" {
		return s, nil
	}
	return "", &ValidationError{Param: key, Reason: "required"}
}

// AddParams validates the arguments shared by every add tool and collects
// them into TypeParams for the type mapper. All validation happens here,
// before anything touches the network.
func AddParams(args map[string]any) (TypeParams, error) {
	p := TypeParams{
		Text:           argString(args, "text"),
		UserID:         argString(args, "user_id"),
		AgentID:        argString(args, "agent_id"),
		RunID:          argString(args, "run_id"),
		Includes:       argString(args, "includes"),
		Excludes:       argString(args, "excludes"),
		ExpirationDate: argString(args, "expiration_date"),
	}

	if graph, ok := argBool(args, "enable_graph"); ok {
		p.EnableGraph = &graph
	}

	metadata, err := argMap(args, "metadata", "must be an object or a JSON object string")
	if err != nil {
		return TypeParams{}, err
	}
	p.Metadata = metadata

	timestamp, hasTimestamp, err := argInt(args, "timestamp")
	if err != nil {
		return TypeParams{}, err
	}

	val := valgo.Is(valgo.String(p.Text, "text").Not().Blank()).
		Is(valgo.String(p.UserID, "user_id").Not().Blank())
	if hasTimestamp {
		val = val.Is(valgo.Number(timestamp, "timestamp").GreaterOrEqualTo(0))
		p.Timestamp = timestamp
	}
	if err := firstError(val); err != nil {
		return TypeParams{}, err
	}

	if p.ExpirationDate != "" {
		if err := checkISODate("expiration_date", p.ExpirationDate); err != nil {
			return TypeParams{}, err
		}
	}

	return p, nil
}

// NormalizeSearch validates and coerces search_memory arguments into the
// canonical search request. The filters argument may arrive as a structured
// object or as a serialized JSON string; the memory_duration and memory_type
// shorthands are folded into the structured predicate.
func NormalizeSearch(args map[string]any) (*mem0.SearchRequest, error) {
	req := &mem0.SearchRequest{
		Query:   argString(args, "query"),
		UserID:  argString(args, "user_id"),
		AgentID: argString(args, "agent_id"),
		RunID:   argString(args, "run_id"),
	}

	val := valgo.Is(valgo.String(req.Query, "query").Not().Blank()).
		Is(valgo.String(req.UserID, "user_id").Not().Blank())

	threshold, hasThreshold, err := argFloat(args, "threshold")
	if err != nil {
		return nil, err
	}
	if hasThreshold {
		val = val.Is(valgo.Number(threshold, "threshold").Between(0.0, 1.0))
	}
	if err := firstError(val); err != nil {
		return nil, err
	}
	if hasThreshold {
		req.Threshold = &threshold
	}

	filters, err := argMap(args, "filters", "invalid filter syntax")
	if err != nil {
		return nil, err
	}
	req.Filters = withTypeFilters(filters, argString(args, "memory_duration"), argString(args, "memory_type"))

	if graph, ok := argBool(args, "enable_graph"); ok && graph {
		req.EnableGraph = true
		req.OutputFormat = "v1.1"
	}

	return req, nil
}

// NormalizeList validates and coerces get_all_memories arguments. Page and
// page_size take precedence over limit when both retrieval strategies are
// supplied; limit is then deliberately dropped.
func NormalizeList(args map[string]any) (*mem0.ListRequest, error) {
	req := &mem0.ListRequest{
		UserID:  argString(args, "user_id"),
		AgentID: argString(args, "agent_id"),
		RunID:   argString(args, "run_id"),
	}

	page, err := positiveInt(args, "page")
	if err != nil {
		return nil, err
	}
	pageSize, err := positiveInt(args, "page_size")
	if err != nil {
		return nil, err
	}
	limit, err := positiveInt(args, "limit")
	if err != nil {
		return nil, err
	}

	switch {
	case page > 0 || pageSize > 0:
		req.Page = page
		req.PageSize = pageSize
	case limit > 0:
		req.Limit = limit
	}

	if graph, ok := argBool(args, "enable_graph"); ok && graph {
		req.EnableGraph = true
		req.OutputFormat = "v1.1"
	}

	return req, nil
}

// NormalizeCount builds the single-record list request the count tool uses to
// read the remote total without transferring the records themselves.
func NormalizeCount(args map[string]any) (*mem0.ListRequest, error) {
	userID := argString(args, "user_id")
	if err := firstError(valgo.Is(valgo.String(userID, "user_id").Not().Blank())); err != nil {
		return nil, err
	}

	filters, err := argMap(args, "filters", "invalid filter syntax")
	if err != nil {
		return nil, err
	}

	return &mem0.ListRequest{
		UserID:   userID,
		Filters:  filters,
		Page:     1,
		PageSize: 1,
	}, nil
}

// NormalizeFeedback validates send_feedback arguments.
func NormalizeFeedback(args map[string]any) (*mem0.FeedbackRequest, error) {
	req := &mem0.FeedbackRequest{
		MemoryID: argString(args, "memory_id"),
		Feedback: argString(args, "feedback_type"),
		Comments: argString(args, "comments"),
	}

	val := valgo.Is(valgo.String(req.MemoryID, "memory_id").Not().Blank()).
		Is(valgo.String(req.Feedback, "feedback_type").InSlice(FeedbackTypes))
	if err := firstError(val); err != nil {
		return nil, err
	}

	return req, nil
}

// withTypeFilters merges the duration/type shorthands into a copy of the
// structured predicate, leaving the caller's map untouched.
func withTypeFilters(filters map[string]any, duration, memoryType string) map[string]any {
	if duration == "" && memoryType == "" {
		return filters
	}

	merged := make(map[string]any, len(filters)+2)
	for key, value := range filters {
		merged[key] = value
	}
	if duration != "" {
		merged["metadata.memory_duration"] = duration
	}
	if memoryType != "" {
		merged["metadata.memory_type"] = memoryType
	}
	return merged
}

func positiveInt(args map[string]any, key string) (int, error) {
	value, ok, err := argInt(args, key)
	if err != nil {
		return 0, err
	}
	if !ok || value == 0 {
		return 0, nil
	}
	if value < 0 {
		return 0, &ValidationError{Param: key, Reason: "must be positive"}
	}
	return int(value), nil
}

func checkISODate(param, value string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return &ValidationError{Param: param, Reason: "must be an ISO-8601 date or timestamp"}
}

// firstError converts a failed valgo session into a ValidationError naming
// the offending parameter. Parameters are picked in sorted order so the same
// bad call always reports the same one.
func firstError(val *valgo.Validation) error {
	if val.Valid() {
		return nil
	}

	fieldErrs := val.Errors()
	names := make([]string, 0, len(fieldErrs))
	for name := range fieldErrs {
		names = append(names, name)
	}
	sort.Strings(names)

	name := names[0]
	return &ValidationError{Param: name, Reason: strings.Join(fieldErrs[name].Messages(), "; ")}
}
