package handlers

import (
	"encoding/json"
	"net/http"

	"course-server/middleware"
	"course-server/models"
	"course-server/services"
	"course-server/utils/errors"
)

type CourseHandler struct {
	catalog   *services.CatalogService
	courses   *services.CourseService
	itinerary *services.ItineraryService
	members   *services.MemberService
}

type RecommendCourseRequest struct {
	MemberID   string `json:"memberId"`
	Gu         string `json:"gu"`
	Parameter1 string `json:"parameter1"`
	Parameter2 string `json:"parameter2"`
	Parameter3 string `json:"parameter3"`
}

type RecommendCourseResponse struct {
	Courses map[string][]models.EnrichedStop `json:"courses"`
	Failed  map[string]string                `json:"failed,omitempty"`
}

type SaveCourseRequest struct {
	MemberID string `json:"memberId"`
	Gu       string `json:"gu"`
	Course1  string `json:"course1"`
	Course2  string `json:"course2"`
	Course3  string `json:"course3"`
	Course4  string `json:"course4"`
	Course5  string `json:"course5"`
}

func NewCourseHandler(catalog *services.CatalogService, courses *services.CourseService, itinerary *services.ItineraryService, members *services.MemberService) *CourseHandler {
	return &CourseHandler{catalog: catalog, courses: courses, itinerary: itinerary, members: members}
}

// RecommendCourse builds a themed three-stop course per keyword and enriches
// each with travel time and live congestion, chained from the member's start
// point. Failed themes are reported alongside the successful ones.
func (h *CourseHandler) RecommendCourse(w http.ResponseWriter, r *http.Request) {
	var input RecommendCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if input.MemberID == "" || input.Gu == "" || input.Parameter1 == "" || input.Parameter2 == "" || input.Parameter3 == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	member, err := h.members.GetMemberInfo(r.Context(), input.MemberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	candidates, err := h.catalog.ListCandidates(r.Context(), input.Gu)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if len(candidates) == 0 {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	keywords := []string{input.Parameter1, input.Parameter2, input.Parameter3}
	courses, failed, err := h.courses.AssembleCourses(r.Context(), input.Gu, candidates, keywords)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if len(courses) == 0 {
		middleware.WriteError(w, errors.ErrSelectionInvalid)
		return
	}

	enriched, enrichFailed := h.itinerary.EnrichCourses(r.Context(), input.Gu, member.Start, courses)

	response := RecommendCourseResponse{Courses: enriched, Failed: make(map[string]string)}
	for theme, themeErr := range failed {
		response.Failed[theme] = themeErr.Error()
	}
	for theme, themeErr := range enrichFailed {
		response.Failed[theme] = themeErr.Error()
	}
	if len(response.Failed) == 0 {
		response.Failed = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SaveCourse stores a five-slot course as the member's active course.
func (h *CourseHandler) SaveCourse(w http.ResponseWriter, r *http.Request) {
	var input SaveCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	slots := []string{input.Course1, input.Course2, input.Course3, input.Course4, input.Course5}
	for _, slot := range slots {
		if slot == "" {
			middleware.WriteError(w, errors.ErrInvalidInput)
			return
		}
	}

	courseID, err := h.members.SaveCourse(r.Context(), input.MemberID, input.Gu, slots)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Member courses updated successfully", "courseId": courseID})
}

// StopCourse deactivates every active course of the member.
func (h *CourseHandler) StopCourse(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")
	if memberID == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	count, err := h.members.StopActiveCourses(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"message": "Updated items successfully", "updated": count})
}
