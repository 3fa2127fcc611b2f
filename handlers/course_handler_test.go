package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendCourseRejectsMissingFields(t *testing.T) {
	h := NewCourseHandler(nil, nil, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing memberId", `{"gu":"gangnam","parameter1":"a","parameter2":"b","parameter3":"c"}`},
		{"missing gu", `{"memberId":"m1","parameter1":"a","parameter2":"b","parameter3":"c"}`},
		{"missing keyword", `{"memberId":"m1","gu":"gangnam","parameter1":"a","parameter2":"b"}`},
		{"empty keyword", `{"memberId":"m1","gu":"gangnam","parameter1":"a","parameter2":"","parameter3":"c"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/course/recommend", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.RecommendCourse(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestSaveCourseRejectsMissingSlots(t *testing.T) {
	h := NewCourseHandler(nil, nil, nil, nil)

	body := `{"memberId":"m1","gu":"gangnam","course1":"p1","course2":"p2","course3":"p3","course4":"p4"}`
	req := httptest.NewRequest(http.MethodPost, "/course/save", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.SaveCourse(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStopCourseRequiresMemberID(t *testing.T) {
	h := NewCourseHandler(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/course/stop", nil)
	rec := httptest.NewRecorder()

	h.StopCourse(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
