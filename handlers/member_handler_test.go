package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberHandlersRequireMemberID(t *testing.T) {
	h := NewMemberHandler(nil, nil, nil)

	tests := []struct {
		name    string
		method  string
		url     string
		handler http.HandlerFunc
	}{
		{"info", http.MethodGet, "/member/info", h.GetInfo},
		{"start", http.MethodPost, "/member/start?address=somewhere", h.SetStartLocation},
		{"courses", http.MethodGet, "/member/courses", h.GetCourses},
		{"realtime", http.MethodGet, "/member/courses/realtime", h.GetRealtimeCourse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			tt.handler(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSetStartLocationRequiresAddress(t *testing.T) {
	h := NewMemberHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/member/start?memberId=m1", nil)
	rec := httptest.NewRecorder()

	h.SetStartLocation(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
