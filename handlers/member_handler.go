package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"course-server/middleware"
	"course-server/models"
	"course-server/services"
	"course-server/utils/errors"
)

type MemberHandler struct {
	members   *services.MemberService
	catalog   *services.CatalogService
	itinerary *services.ItineraryService
}

type MemberInfoResponse struct {
	MemberID string `json:"memberId"`
	Nickname string `json:"nickname"`
	Address  string `json:"address"`
	MapX     string `json:"mapX"`
	MapY     string `json:"mapY"`
}

type SavedCourseDetail struct {
	CourseID string         `json:"courseId"`
	Gu       string         `json:"gu"`
	Active   bool           `json:"active"`
	Places   []models.Place `json:"places"`
}

func NewMemberHandler(members *services.MemberService, catalog *services.CatalogService, itinerary *services.ItineraryService) *MemberHandler {
	return &MemberHandler{members: members, catalog: catalog, itinerary: itinerary}
}

// GetInfo returns the member profile with its start coordinate as strings.
func (h *MemberHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")
	if memberID == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	member, err := h.members.GetMemberInfo(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MemberInfoResponse{
		MemberID: member.ID,
		Nickname: member.Nickname,
		Address:  member.Address,
		MapX:     strconv.FormatFloat(member.Start.X, 'f', -1, 64),
		MapY:     strconv.FormatFloat(member.Start.Y, 'f', -1, 64),
	})
}

// SetStartLocation geocodes the given address and stores it as the member's
// itinerary start point.
func (h *MemberHandler) SetStartLocation(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")
	address := r.URL.Query().Get("address")
	if memberID == "" || address == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	point, err := h.members.SetStartLocation(r.Context(), memberID, address)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"mapX": strconv.FormatFloat(point.X, 'f', -1, 64),
		"mapY": strconv.FormatFloat(point.Y, 'f', -1, 64),
	})
}

// GetCourses returns every saved course of the member with resolved place
// details.
func (h *MemberHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")
	if memberID == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	saved, err := h.members.GetSavedCourses(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if len(saved) == 0 {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	details := make([]SavedCourseDetail, 0, len(saved))
	for _, course := range saved {
		detail := SavedCourseDetail{CourseID: course.CourseID, Gu: course.District, Active: course.Active}
		for _, slot := range course.Slots {
			if slot == "" {
				continue
			}
			place, err := h.catalog.GetPlace(r.Context(), course.District, slot)
			if err != nil || place == nil {
				continue
			}
			detail.Places = append(detail.Places, *place)
		}
		details = append(details, detail)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// GetRealtimeCourse enriches the member's active course stops sequentially
// from the member's start point, carrying the running point across courses
// when more than one is still active.
func (h *MemberHandler) GetRealtimeCourse(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")
	if memberID == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	active, err := h.members.GetActiveCourses(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if len(active) == 0 {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}
	member, err := h.members.GetMemberInfo(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	point := member.Start
	stops := make([]models.EnrichedStop, 0, len(active)*models.SavedSlots)
	for _, course := range active {
		ids := make([]string, 0, len(course.Slots))
		for _, slot := range course.Slots {
			if slot != "" {
				ids = append(ids, slot)
			}
		}
		if len(ids) == 0 {
			continue
		}
		enriched, err := h.itinerary.EnrichCourse(r.Context(), course.District, point, ids)
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
		stops = append(stops, enriched...)
		if len(enriched) > 0 {
			last := enriched[len(enriched)-1]
			point = models.Coordinate{X: last.MapX, Y: last.MapY}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stops)
}
