package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-server/models"
)

func oracleCandidates() []models.Place {
	return []models.Place{
		{ID: "p1", Name: "Cafe One", Category: models.CategoryCafe, Rating: 4.5},
		{ID: "p2", Name: "Diner Two", Category: models.CategoryRestaurant, Rating: 4.0},
		{ID: "p3", Name: "Park Three", Category: models.CategoryAttraction, Rating: 4.8},
	}
}

func oracleTable() ScoreTable {
	return ScoreTable{
		"p1": {"12:00": 9.5},
		"p2": {"12:00": 19.0},
		"p3": {"12:00": 9.8},
	}
}

func TestModelOracleSelectCourses(t *testing.T) {
	var captured oracleRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		text, _ := json.Marshal(map[string]any{
			"courses": map[string][]string{
				"a": {"p1", "p2", "p3"},
				"b": {"p3", "p2", "p1"},
				"c": {"p2", "p1", "p3"},
			},
		})
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": string(text)}},
		})
	}))
	defer server.Close()

	oracle := NewModelOracle(server.URL, "secret", "test-model")
	keywords := []string{"a", "b", "c"}
	constraints := map[string]models.ThemeConstraint{
		"a": {Required: map[string]int{models.CategoryCafe: 1}, Any: 2},
	}

	courses, err := oracle.SelectCourses(context.Background(), "gangnam", keywords, constraints, oracleTable(), oracleCandidates())
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, courses["a"])
	assert.Equal(t, []string{"p3", "p2", "p1"}, courses["b"])

	// The prompt carries the model id, the candidate data, and the rules.
	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 1)
	prompt := captured.Messages[0].Content
	assert.Contains(t, prompt, "p1")
	assert.Contains(t, prompt, "gangnam")
	assert.Contains(t, prompt, "cafe")
	assert.Contains(t, prompt, `"courses"`)
}

func TestModelOracleNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	oracle := NewModelOracle(server.URL, "secret", "test-model")
	_, err := oracle.SelectCourses(context.Background(), "gangnam", []string{"a", "b", "c"}, nil, oracleTable(), oracleCandidates())
	assert.Error(t, err)
}

func TestModelOracleUnparsableCoursePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "sorry, here is an essay instead"}},
		})
	}))
	defer server.Close()

	oracle := NewModelOracle(server.URL, "secret", "test-model")
	_, err := oracle.SelectCourses(context.Background(), "gangnam", []string{"a", "b", "c"}, nil, oracleTable(), oracleCandidates())
	assert.Error(t, err)
}

func TestModelOracleNoTextBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
	}))
	defer server.Close()

	oracle := NewModelOracle(server.URL, "secret", "test-model")
	_, err := oracle.SelectCourses(context.Background(), "gangnam", []string{"a", "b", "c"}, nil, oracleTable(), oracleCandidates())
	assert.Error(t, err)
}

func TestModelOracleWrongKeywordCount(t *testing.T) {
	oracle := NewModelOracle("http://unused", "secret", "test-model")
	_, err := oracle.SelectCourses(context.Background(), "gangnam", []string{"a"}, nil, oracleTable(), oracleCandidates())
	assert.Error(t, err)
}
