package services

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"course-server/models"
	"course-server/utils/errors"
)

// PlaceResolver resolves a single catalog place; a nil place means absent.
type PlaceResolver interface {
	GetPlace(ctx context.Context, district, id string) (*models.Place, error)
}

// CongestionLookup resolves the live crowd level for a sub-district area.
type CongestionLookup interface {
	GetCongestion(ctx context.Context, district, areaCode string) (*string, error)
}

// DurationLookup resolves transit minutes between two coordinates.
type DurationLookup interface {
	GetDuration(ctx context.Context, from, to models.Coordinate) (*string, error)
}

// enrichWorkers bounds the concurrent per-theme enrichment chains.
const enrichWorkers = 3

// ItineraryService walks an ordered course and folds travel and congestion
// data into each stop, carrying the traveler's current point from one stop
// to the next.
type ItineraryService struct {
	places     PlaceResolver
	congestion CongestionLookup
	durations  DurationLookup
}

func NewItineraryService(places PlaceResolver, congestion CongestionLookup, durations DurationLookup) *ItineraryService {
	return &ItineraryService{places: places, congestion: congestion, durations: durations}
}

// EnrichCourse enriches placeIDs in order, starting from start. A place that
// cannot be resolved is omitted and does not advance the running point; a
// failed duration or congestion lookup nulls that field only. Output order
// equals input order minus omitted stops.
func (s *ItineraryService) EnrichCourse(ctx context.Context, district string, start models.Coordinate, placeIDs []string) ([]models.EnrichedStop, error) {
	if district == "" {
		return nil, errors.ErrInvalidInput
	}
	if len(placeIDs) == 0 {
		return nil, errors.ErrInvalidInput
	}

	point := start
	stops := make([]models.EnrichedStop, 0, len(placeIDs))
	for _, id := range placeIDs {
		place, err := s.places.GetPlace(ctx, district, id)
		if err != nil {
			log.Printf("Place lookup failed for %s/%s: %v", district, id, err)
			continue
		}
		if place == nil {
			log.Printf("Place %s/%s not in catalog, skipping stop", district, id)
			continue
		}

		duration, err := s.durations.GetDuration(ctx, point, place.Location)
		if err != nil {
			log.Printf("Duration lookup failed for leg to %s: %v", id, err)
			duration = nil
		}

		congestion, err := s.congestion.GetCongestion(ctx, district, place.AreaCode)
		if err != nil {
			log.Printf("Congestion lookup failed for area %s: %v", place.AreaCode, err)
			congestion = nil
		}

		stops = append(stops, models.EnrichedStop{
			Name:       place.Name,
			ID:         place.ID,
			Category:   place.Category,
			Address:    place.Address,
			Rating:     place.Rating,
			Congestion: congestion,
			MapX:       place.Location.X,
			MapY:       place.Location.Y,
			ImageURL:   place.ImageURL,
			Duration:   duration,
		})
		point = place.Location
	}
	return stops, nil
}

// EnrichCourses enriches each theme's course concurrently. Legs within one
// course stay strictly sequential; the per-theme chains are independent, so
// they fan out under a small worker limit. One theme's failure never blocks
// the others.
func (s *ItineraryService) EnrichCourses(ctx context.Context, district string, start models.Coordinate, courses map[string]models.Course) (map[string][]models.EnrichedStop, map[string]error) {
	var mu sync.Mutex
	enriched := make(map[string][]models.EnrichedStop, len(courses))
	failed := make(map[string]error)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichWorkers)
	for theme, course := range courses {
		theme, course := theme, course
		g.Go(func() error {
			stops, err := s.EnrichCourse(ctx, district, start, course.PlaceIDs)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[theme] = err
				return nil
			}
			enriched[theme] = stops
			return nil
		})
	}
	g.Wait()
	return enriched, failed
}
