package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"course-server/models"
	"course-server/utils/errors"
)

// CourseService assembles themed three-stop courses: it scores every
// candidate, asks the selection oracle once for all themes, and validates
// each theme's answer independently so one bad theme never sinks the rest.
type CourseService struct {
	oracle SelectionOracle
}

func NewCourseService(oracle SelectionOracle) *CourseService {
	return &CourseService{oracle: oracle}
}

// AssembleCourses returns the successfully built course per theme keyword
// plus the per-theme failures. The trailing error is only non-nil for
// structurally invalid input, which rejects the whole request.
func (s *CourseService) AssembleCourses(ctx context.Context, district string, candidates []models.Place, keywords []string) (map[string]models.Course, map[string]error, error) {
	if district == "" {
		return nil, nil, errors.NewAPIError("INVALID_INPUT", "Missing district", http.StatusBadRequest)
	}
	if len(candidates) == 0 {
		return nil, nil, errors.NewAPIError("INVALID_INPUT", "No candidate places for district", http.StatusBadRequest)
	}
	if len(keywords) != 3 {
		return nil, nil, errors.NewAPIError("INVALID_INPUT", "Exactly three theme keywords are required", http.StatusBadRequest)
	}
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			return nil, nil, errors.NewAPIError("INVALID_INPUT", "Theme keywords must be non-empty", http.StatusBadRequest)
		}
	}

	table := BuildScoreTable(candidates)

	constraints := make(map[string]models.ThemeConstraint)
	for _, kw := range keywords {
		if c, ok := LookupTheme(kw); ok {
			constraints[kw] = c
		}
	}

	courses := make(map[string]models.Course)
	failed := make(map[string]error)

	selected, err := s.oracle.SelectCourses(ctx, district, keywords, constraints, table, candidates)
	if err != nil {
		wrapped := errors.Wrap(err, "ORACLE_ERROR", "Selection oracle call failed", http.StatusBadGateway)
		for _, kw := range keywords {
			failed[kw] = wrapped
		}
		return courses, failed, nil
	}

	known := make(map[string]bool, len(candidates))
	for _, p := range candidates {
		known[p.ID] = true
	}

	for _, kw := range keywords {
		ids, ok := selected[kw]
		if !ok {
			failed[kw] = selectionError(kw, "oracle returned no course for theme")
			continue
		}
		if len(ids) != models.CourseSize {
			failed[kw] = selectionError(kw, fmt.Sprintf("oracle returned %d stops, want %d", len(ids), models.CourseSize))
			continue
		}
		valid := true
		for _, id := range ids {
			if !known[id] {
				failed[kw] = selectionError(kw, fmt.Sprintf("oracle returned unknown place id %q", id))
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		courses[kw] = models.Course{Theme: kw, District: district, PlaceIDs: ids}
	}
	return courses, failed, nil
}

func selectionError(keyword, detail string) error {
	return errors.NewAPIError("SELECTION_INVALID", fmt.Sprintf("Invalid selection for theme %q", keyword), http.StatusBadGateway, detail)
}
