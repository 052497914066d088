package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paramOf(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return verr.Param
}

func TestAddParamsRequiresText(t *testing.T) {
	_, err := AddParams(map[string]any{"user_id": "u1"})
	assert.Error(t, err)
	assert.Equal(t, "text", paramOf(t, err))
}

func TestAddParamsRequiresUserID(t *testing.T) {
	_, err := AddParams(map[string]any{"text": "hello"})
	assert.Error(t, err)
	assert.Equal(t, "user_id", paramOf(t, err))
}

func TestAddParamsNamesSameParamEveryTime(t *testing.T) {
	// Both required fields are missing; the reported parameter must not
	// depend on map iteration order.
	for i := 0; i < 10; i++ {
		_, err := AddParams(map[string]any{})
		assert.Error(t, err)
		assert.Equal(t, "text", paramOf(t, err))
	}
}

func TestAddParamsCollectsFields(t *testing.T) {
	p, err := AddParams(map[string]any{
		"text":            "hello",
		"user_id":         "u1",
		"agent_id":        "a1",
		"run_id":          "r1",
		"metadata":        map[string]any{"k": "v"},
		"enable_graph":    true,
		"timestamp":       float64(1700000000),
		"expiration_date": "2030-01-01",
		"includes":        "inc",
		"excludes":        "exc",
	})
	assert.NoError(t, err)
	assert.Equal(t, "hello", p.Text)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "a1", p.AgentID)
	assert.Equal(t, "r1", p.RunID)
	assert.Equal(t, map[string]any{"k": "v"}, p.Metadata)
	assert.NotNil(t, p.EnableGraph)
	assert.True(t, *p.EnableGraph)
	assert.Equal(t, int64(1700000000), p.Timestamp)
	assert.Equal(t, "2030-01-01", p.ExpirationDate)
	assert.Equal(t, "inc", p.Includes)
	assert.Equal(t, "exc", p.Excludes)
}

func TestAddParamsMetadataAsJSONString(t *testing.T) {
	p, err := AddParams(map[string]any{
		"text":     "hello",
		"user_id":  "u1",
		"metadata": `{"k": "v"}`,
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, p.Metadata)

	_, err = AddParams(map[string]any{
		"text":     "hello",
		"user_id":  "u1",
		"metadata": `{not json`,
	})
	assert.Error(t, err)
	assert.Equal(t, "metadata", paramOf(t, err))
}

func TestAddParamsNegativeTimestamp(t *testing.T) {
	_, err := AddParams(map[string]any{
		"text":      "hello",
		"user_id":   "u1",
		"timestamp": float64(-5),
	})
	assert.Error(t, err)
	assert.Equal(t, "timestamp", paramOf(t, err))
}

func TestAddParamsFractionalTimestamp(t *testing.T) {
	_, err := AddParams(map[string]any{
		"text":      "hello",
		"user_id":   "u1",
		"timestamp": 17.5,
	})
	assert.Error(t, err)
	assert.Equal(t, "timestamp", paramOf(t, err))
}

func TestAddParamsInvalidExpiration(t *testing.T) {
	_, err := AddParams(map[string]any{
		"text":            "hello",
		"user_id":         "u1",
		"expiration_date": "next tuesday",
	})
	assert.Error(t, err)
	assert.Equal(t, "expiration_date", paramOf(t, err))
}

func TestAddParamsExpirationFormats(t *testing.T) {
	for _, value := range []string{"2030-01-01", "2030-01-01T12:00:00Z"} {
		_, err := AddParams(map[string]any{
			"text":            "hello",
			"user_id":         "u1",
			"expiration_date": value,
		})
		assert.NoError(t, err, value)
	}
}

func TestNormalizeSearchRequiresQueryAndUser(t *testing.T) {
	_, err := NormalizeSearch(map[string]any{"user_id": "u1"})
	assert.Equal(t, "query", paramOf(t, err))

	_, err = NormalizeSearch(map[string]any{"query": "q"})
	assert.Equal(t, "user_id", paramOf(t, err))
}

func TestNormalizeSearchThresholdRange(t *testing.T) {
	_, err := NormalizeSearch(map[string]any{
		"query":     "q",
		"user_id":   "u1",
		"threshold": 1.5,
	})
	assert.Error(t, err)
	assert.Equal(t, "threshold", paramOf(t, err))

	req, err := NormalizeSearch(map[string]any{
		"query":     "q",
		"user_id":   "u1",
		"threshold": 0.7,
	})
	assert.NoError(t, err)
	assert.NotNil(t, req.Threshold)
	assert.Equal(t, 0.7, *req.Threshold)
}

func TestNormalizeSearchFiltersString(t *testing.T) {
	req, err := NormalizeSearch(map[string]any{
		"query":   "q",
		"user_id": "u1",
		"filters": `{"categories": ["work"]}`,
	})
	assert.NoError(t, err)
	assert.Equal(t, []any{"work"}, req.Filters["categories"])

	_, err = NormalizeSearch(map[string]any{
		"query":   "q",
		"user_id": "u1",
		"filters": `{broken`,
	})
	assert.Error(t, err)
	assert.Equal(t, "filters", paramOf(t, err))
}

func TestNormalizeSearchTypeShorthands(t *testing.T) {
	caller := map[string]any{"categories": []any{"work"}}
	req, err := NormalizeSearch(map[string]any{
		"query":           "q",
		"user_id":         "u1",
		"filters":         caller,
		"memory_duration": "long_term",
		"memory_type":     "semantic",
	})
	assert.NoError(t, err)
	assert.Equal(t, "long_term", req.Filters["metadata.memory_duration"])
	assert.Equal(t, "semantic", req.Filters["metadata.memory_type"])
	// Caller's filter map must stay untouched.
	assert.Equal(t, map[string]any{"categories": []any{"work"}}, caller)
}

func TestNormalizeSearchGraph(t *testing.T) {
	req, err := NormalizeSearch(map[string]any{
		"query":        "q",
		"user_id":      "u1",
		"enable_graph": true,
	})
	assert.NoError(t, err)
	assert.True(t, req.EnableGraph)
	assert.Equal(t, "v1.1", req.OutputFormat)
}

func TestNormalizeListPaginationPrecedence(t *testing.T) {
	req, err := NormalizeList(map[string]any{
		"user_id":   "u1",
		"limit":     float64(5),
		"page":      float64(1),
		"page_size": float64(10),
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.PageSize)
	assert.Zero(t, req.Limit)
}

func TestNormalizeListLimitOnly(t *testing.T) {
	req, err := NormalizeList(map[string]any{
		"user_id": "u1",
		"limit":   float64(5),
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, req.Limit)
	assert.Zero(t, req.Page)
}

func TestNormalizeListGraphOutputFormat(t *testing.T) {
	req, err := NormalizeList(map[string]any{
		"user_id":      "u1",
		"enable_graph": true,
	})
	assert.NoError(t, err)
	assert.True(t, req.EnableGraph)
	assert.Equal(t, "v1.1", req.OutputFormat)

	plain, err := NormalizeList(map[string]any{"user_id": "u1"})
	assert.NoError(t, err)
	assert.False(t, plain.EnableGraph)
	assert.Empty(t, plain.OutputFormat)
}

func TestNormalizeListNegativePage(t *testing.T) {
	_, err := NormalizeList(map[string]any{
		"user_id": "u1",
		"page":    float64(-1),
	})
	assert.Error(t, err)
	assert.Equal(t, "page", paramOf(t, err))
}

func TestNormalizeCount(t *testing.T) {
	_, err := NormalizeCount(map[string]any{})
	assert.Equal(t, "user_id", paramOf(t, err))

	req, err := NormalizeCount(map[string]any{
		"user_id": "u1",
		"filters": `{"categories": ["work"]}`,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 1, req.PageSize)
	assert.Equal(t, []any{"work"}, req.Filters["categories"])
}

func TestNormalizeFeedback(t *testing.T) {
	req, err := NormalizeFeedback(map[string]any{
		"memory_id":     "m1",
		"feedback_type": "helpful",
		"comments":      "spot on",
	})
	assert.NoError(t, err)
	assert.Equal(t, "m1", req.MemoryID)
	assert.Equal(t, "helpful", req.Feedback)
	assert.Equal(t, "spot on", req.Comments)

	_, err = NormalizeFeedback(map[string]any{
		"memory_id":     "m1",
		"feedback_type": "amazing",
	})
	assert.Error(t, err)
	assert.Equal(t, "feedback_type", paramOf(t, err))
}
