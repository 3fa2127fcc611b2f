package handlers

import (
	"encoding/json"
	"net/http"

	"course-server/middleware"
	"course-server/models"
	"course-server/services"
	"course-server/utils/errors"
)

type HotplaceHandler struct {
	catalog *services.CatalogService
}

type AreasResponse struct {
	Areas []models.AreaCongestion `json:"areas"`
	Count int                     `json:"count"`
	Gu    string                  `json:"gu"`
}

type PlacesResponse struct {
	Places []models.Place `json:"places"`
	Count  int            `json:"count"`
	Gu     string         `json:"gu"`
}

type ParkingLotsResponse struct {
	ParkingLots []models.ParkingLot `json:"parkingLots"`
	Count       int                 `json:"count"`
	Gu          string              `json:"gu"`
}

func NewHotplaceHandler(catalog *services.CatalogService) *HotplaceHandler {
	return &HotplaceHandler{catalog: catalog}
}

// GetAreas returns the live congestion level of every area in a district.
func (h *HotplaceHandler) GetAreas(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	if gu == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	areas, err := h.catalog.ListAreaCongestion(r.Context(), gu)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if len(areas) == 0 {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AreasResponse{Areas: areas, Count: len(areas), Gu: gu})
}

// GetPlaces returns the district's places, optionally filtered by category.
func (h *HotplaceHandler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	if gu == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	category := r.URL.Query().Get("category")

	places, err := h.catalog.ListPlacesByCategory(r.Context(), gu, category)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if len(places) == 0 {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlacesResponse{Places: places, Count: len(places), Gu: gu})
}

// GetParkingLots returns the district's parking lots with live occupancy.
func (h *HotplaceHandler) GetParkingLots(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	if gu == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	lots, err := h.catalog.ListParkingLots(r.Context(), gu)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ParkingLotsResponse{ParkingLots: lots, Count: len(lots), Gu: gu})
}

// GetPlaceDetail returns one place by district and identifier.
func (h *HotplaceHandler) GetPlaceDetail(w http.ResponseWriter, r *http.Request) {
	gu := r.URL.Query().Get("gu")
	id := r.URL.Query().Get("id")
	if gu == "" || id == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	place, err := h.catalog.GetPlace(r.Context(), gu, id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if place == nil {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(place)
}
