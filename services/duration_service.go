package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-server/models"
)

// DurationService resolves transit travel time between two coordinates via a
// Directions-style routing API. It returns the minute count of the first
// route's first leg, as the API reports it ("23 mins" -> "23"), or nil when
// no route comes back.
type DurationService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewDurationService(endpoint, apiKey string) *DurationService {
	return &DurationService{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *DurationService) GetDuration(ctx context.Context, from, to models.Coordinate) (*string, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from.Y, from.X))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Y, to.X))
	params.Set("mode", "transit")
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duration request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Routes []struct {
			Legs []struct {
				Duration struct {
					Text string `json:"text"`
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("duration response not parseable: %w", err)
	}
	if len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return nil, nil
	}
	fields := strings.Fields(payload.Routes[0].Legs[0].Duration.Text)
	if len(fields) == 0 {
		return nil, nil
	}
	minutes := fields[0]
	return &minutes, nil
}
