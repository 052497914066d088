package memory

import (
	"fmt"

	"github.com/theapemachine/mem0-mcp/pkg/mem0"
)

// Tag identifies the semantic kind of a memory. Each tag maps to a rule set
// describing which metadata the canonical request is stamped with and which
// defaults apply.
type Tag string

const (
	TagConversation Tag = "conversation"
	TagWorking      Tag = "working"
	TagAttention    Tag = "attention"
	TagEpisodic     Tag = "episodic"
	TagSemantic     Tag = "semantic"
	TagProcedural   Tag = "procedural"
	TagSelective    Tag = "selective"
	TagGeneric      Tag = "generic"
)

// Metadata keys owned by the type mapper. Caller-supplied values for these
// two keys never win over the tag's canonical values.
const (
	MetaDuration = "memory_duration"
	MetaType     = "memory_type"
)

const (
	durationShortTerm = "short_term"
	durationLongTerm  = "long_term"
)

// typeRule is one row of the declarative tag registry.
type typeRule struct {
	duration     string // injected as memory_duration, "" = none
	memoryType   string // injected as memory_type, "" = the tag itself
	extraKey     string // metadata key fed from TypeParams.Extra when set
	requireRunID bool
	graphDefault bool
	typed        bool // inject duration/type metadata at all
}

var typeRules = map[Tag]typeRule{
	TagConversation: {duration: durationShortTerm, requireRunID: true, typed: true},
	TagWorking:      {duration: durationShortTerm, requireRunID: true, typed: true},
	TagAttention:    {duration: durationShortTerm, requireRunID: true, typed: true},
	TagEpisodic:     {duration: durationLongTerm, extraKey: "event_date", typed: true},
	TagSemantic:     {duration: durationLongTerm, extraKey: "category", graphDefault: true, typed: true},
	TagProcedural:   {duration: durationLongTerm, extraKey: "skill_area", typed: true},
	TagSelective:    {},
	TagGeneric:      {},
}

// ShortTermTag validates a short-term memory subtype.
func ShortTermTag(s string) (Tag, error) {
	switch Tag(s) {
	case TagConversation, TagWorking, TagAttention:
		return Tag(s), nil
	case "":
		return TagConversation, nil
	default:
		return "", &ValidationError{
			Param:  "memory_type",
			Reason: fmt.Sprintf("must be one of %q, %q, %q", TagConversation, TagWorking, TagAttention),
		}
	}
}

// TypeParams carries the normalized arguments a specialized add tool was
// called with. Extra is the tag-specific optional field (event_date, category
// or skill_area); Includes/Excludes only apply to filtered tags.
type TypeParams struct {
	Text           string
	UserID         string
	AgentID        string
	RunID          string
	Metadata       map[string]any
	EnableGraph    *bool
	Extra          string
	Includes       string
	Excludes       string
	Timestamp      int64
	ExpirationDate string
}

// MapToCanonical translates a typed memory request into the canonical add
// request submitted to the store. Caller-supplied metadata is never mutated;
// the merged mapping gives caller keys precedence over injected defaults,
// except memory_duration and memory_type which are authoritative from the
// tag.
func MapToCanonical(tag Tag, p TypeParams) (*mem0.AddRequest, error) {
	rule, ok := typeRules[tag]
	if !ok {
		return nil, &ValidationError{Param: "memory_type", Reason: fmt.Sprintf("unknown tag %q", tag)}
	}

	if rule.requireRunID && p.RunID == "" {
		return nil, &ValidationError{Param: "run_id", Reason: "required for short-term memory"}
	}

	text, err := Filter(p.Text, p.Includes, p.Excludes)
	if err != nil {
		return nil, err
	}

	metadata := mergeMetadata(tag, rule, p)

	enableGraph := rule.graphDefault
	if p.EnableGraph != nil {
		enableGraph = *p.EnableGraph
	}

	req := &mem0.AddRequest{
		Messages:       []mem0.Message{{Role: "user", Content: text}},
		UserID:         p.UserID,
		AgentID:        p.AgentID,
		RunID:          p.RunID,
		Metadata:       metadata,
		EnableGraph:    enableGraph,
		Timestamp:      p.Timestamp,
		ExpirationDate: p.ExpirationDate,
		Version:        "v2",
	}
	if enableGraph {
		req.OutputFormat = "v1.1"
	}

	return req, nil
}

// mergeMetadata builds a fresh mapping: injected defaults first, caller keys
// on top, then the tag-owned keys forced back to their canonical values.
func mergeMetadata(tag Tag, rule typeRule, p TypeParams) map[string]any {
	merged := make(map[string]any, len(p.Metadata)+3)

	if rule.extraKey != "" && p.Extra != "" {
		merged[rule.extraKey] = p.Extra
	}

	for key, value := range p.Metadata {
		merged[key] = value
	}

	if rule.typed {
		memoryType := rule.memoryType
		if memoryType == "" {
			memoryType = string(tag)
		}
		merged[MetaDuration] = rule.duration
		merged[MetaType] = memoryType
	}

	if len(merged) == 0 {
		return nil
	}
	return merged
}
