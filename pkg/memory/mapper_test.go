package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToCanonicalShortTerm(t *testing.T) {
	req, err := MapToCanonical(TagWorking, TypeParams{
		Text:   "current task: refactor the parser",
		UserID: "u1",
		RunID:  "session-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "current task: refactor the parser", req.Text())
	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, "session-1", req.RunID)
	assert.Equal(t, "short_term", req.Metadata[MetaDuration])
	assert.Equal(t, "working", req.Metadata[MetaType])
	assert.False(t, req.EnableGraph)
	assert.Equal(t, "v2", req.Version)
}

func TestMapToCanonicalShortTermRequiresRunID(t *testing.T) {
	for _, tag := range []Tag{TagConversation, TagWorking, TagAttention} {
		_, err := MapToCanonical(tag, TypeParams{Text: "x", UserID: "u1"})
		assert.Error(t, err)

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "run_id", verr.Param)
	}
}

func TestMapToCanonicalEpisodic(t *testing.T) {
	req, err := MapToCanonical(TagEpisodic, TypeParams{
		Text:   "Visited the Louvre",
		UserID: "u1",
		Extra:  "2023-05-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, "long_term", req.Metadata[MetaDuration])
	assert.Equal(t, "episodic", req.Metadata[MetaType])
	assert.Equal(t, "2023-05-15", req.Metadata["event_date"])
	assert.False(t, req.EnableGraph)
}

func TestMapToCanonicalSemanticDefaultsGraph(t *testing.T) {
	req, err := MapToCanonical(TagSemantic, TypeParams{
		Text:   "Paris is the capital of France",
		UserID: "u1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "long_term", req.Metadata[MetaDuration])
	assert.Equal(t, "semantic", req.Metadata[MetaType])
	assert.True(t, req.EnableGraph)
	assert.Equal(t, "v1.1", req.OutputFormat)
	assert.Equal(t, "v2", req.Version)
}

func TestMapToCanonicalSemanticGraphOptOut(t *testing.T) {
	graph := false
	req, err := MapToCanonical(TagSemantic, TypeParams{
		Text:        "fact",
		UserID:      "u1",
		EnableGraph: &graph,
	})
	assert.NoError(t, err)
	assert.False(t, req.EnableGraph)
	assert.Empty(t, req.OutputFormat)
}

func TestMapToCanonicalProcedural(t *testing.T) {
	req, err := MapToCanonical(TagProcedural, TypeParams{
		Text:   "Always run the linter before committing",
		UserID: "u1",
		Extra:  "coding",
	})
	assert.NoError(t, err)
	assert.Equal(t, "procedural", req.Metadata[MetaType])
	assert.Equal(t, "coding", req.Metadata["skill_area"])
}

func TestMapToCanonicalCallerMetadataWins(t *testing.T) {
	req, err := MapToCanonical(TagSemantic, TypeParams{
		Text:     "fact",
		UserID:   "u1",
		Extra:    "knowledge",
		Metadata: map[string]any{"category": "override", "project": "xyz"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "override", req.Metadata["category"])
	assert.Equal(t, "xyz", req.Metadata["project"])
}

func TestMapToCanonicalTagOwnedKeysForced(t *testing.T) {
	req, err := MapToCanonical(TagEpisodic, TypeParams{
		Text:   "event",
		UserID: "u1",
		Metadata: map[string]any{
			MetaDuration: "short_term",
			MetaType:     "semantic",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "long_term", req.Metadata[MetaDuration])
	assert.Equal(t, "episodic", req.Metadata[MetaType])
}

func TestMapToCanonicalDoesNotMutateCallerMetadata(t *testing.T) {
	caller := map[string]any{"project": "xyz"}
	_, err := MapToCanonical(TagSemantic, TypeParams{
		Text:     "fact",
		UserID:   "u1",
		Metadata: caller,
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"project": "xyz"}, caller)
}

func TestMapToCanonicalSelectiveFiltersText(t *testing.T) {
	req, err := MapToCanonical(TagSelective, TypeParams{
		Text:     "My name is John. I like dark mode.",
		UserID:   "u1",
		Excludes: `My name is.*?\.`,
	})
	assert.NoError(t, err)
	assert.Equal(t, " I like dark mode.", req.Text())
	assert.Nil(t, req.Metadata)
}

func TestMapToCanonicalSelectiveInvalidPattern(t *testing.T) {
	_, err := MapToCanonical(TagSelective, TypeParams{
		Text:     "text",
		UserID:   "u1",
		Includes: "[",
	})
	assert.Error(t, err)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "includes", verr.Param)
}

func TestMapToCanonicalGenericNoInjectedMetadata(t *testing.T) {
	req, err := MapToCanonical(TagGeneric, TypeParams{
		Text:     "plain memory",
		UserID:   "u1",
		Metadata: map[string]any{"source": "chat"},
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"source": "chat"}, req.Metadata)
	assert.False(t, req.EnableGraph)
}

func TestShortTermTag(t *testing.T) {
	tag, err := ShortTermTag("")
	assert.NoError(t, err)
	assert.Equal(t, TagConversation, tag)

	tag, err = ShortTermTag("attention")
	assert.NoError(t, err)
	assert.Equal(t, TagAttention, tag)

	_, err = ShortTermTag("episodic")
	assert.Error(t, err)
}
