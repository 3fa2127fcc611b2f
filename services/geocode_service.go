package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"course-server/models"
	"course-server/utils/errors"
)

// Geocoder turns a street address into a coordinate.
type Geocoder interface {
	GeocodeAddress(ctx context.Context, address string) (models.Coordinate, error)
}

// GeocodeService resolves addresses through a Kakao-local-style address
// search API.
type GeocodeService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewGeocodeService(endpoint, apiKey string) *GeocodeService {
	return &GeocodeService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *GeocodeService) GeocodeAddress(ctx context.Context, address string) (models.Coordinate, error) {
	params := url.Values{}
	params.Set("query", address)
	params.Set("analyze_type", "exact")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.Coordinate{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "KakaoAK "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Coordinate{}, errors.Wrap(err, "GEOCODE_ERROR", "Address lookup failed", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, errors.NewAPIError("GEOCODE_ERROR", "Address lookup failed", http.StatusBadGateway, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var payload struct {
		Documents []struct {
			X string `json:"x"`
			Y string `json:"y"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Coordinate{}, errors.Wrap(err, "GEOCODE_ERROR", "Address lookup response not parseable", http.StatusBadGateway)
	}
	if len(payload.Documents) == 0 {
		return models.Coordinate{}, errors.NewAPIError("ADDRESS_NOT_FOUND", "Address not found", http.StatusNotFound)
	}

	x, err := strconv.ParseFloat(payload.Documents[0].X, 64)
	if err != nil {
		return models.Coordinate{}, errors.Wrap(err, "GEOCODE_ERROR", "Address lookup returned bad coordinates", http.StatusBadGateway)
	}
	y, err := strconv.ParseFloat(payload.Documents[0].Y, 64)
	if err != nil {
		return models.Coordinate{}, errors.Wrap(err, "GEOCODE_ERROR", "Address lookup returned bad coordinates", http.StatusBadGateway)
	}
	return models.Coordinate{X: x, Y: y}, nil
}
