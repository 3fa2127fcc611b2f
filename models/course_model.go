package models

// CourseSize is the number of stops in a recommended course.
const CourseSize = 3

// SavedSlots is the number of place slots in a saved course.
const SavedSlots = 5

// ThemeConstraint is the category multiset a themed course must satisfy.
// Required counts named categories; Any counts stops that may be anything.
// The zero value imposes no requirement.
type ThemeConstraint struct {
	Required map[string]int
	Any      int
}

// Course is an ordered three-stop selection for one theme in one district.
type Course struct {
	Theme    string   `json:"theme"`
	District string   `json:"gu"`
	PlaceIDs []string `json:"placeIds"`
}

// EnrichedStop is one course stop folded together with its travel leg.
// Duration is the transit time in minutes from the previous point, as the
// routing API reports it; Congestion is the live crowd level at the stop's
// area. Either is null when the lookup failed or returned nothing.
type EnrichedStop struct {
	Name       string  `json:"name"`
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Address    string  `json:"address"`
	Rating     float64 `json:"budget"`
	Congestion *string `json:"congestion"`
	MapX       float64 `json:"mapX"`
	MapY       float64 `json:"mapY"`
	ImageURL   string  `json:"imageUrl"`
	Duration   *string `json:"time"`
}
