package services

import "course-server/models"

// themeConstraints holds the category mix each named theme must satisfy
// across its three stops. Keywords outside this table impose no requirement.
var themeConstraints = map[string]models.ThemeConstraint{
	"good for breaking a diet": {
		Required: map[string]int{models.CategoryRestaurant: 2},
		Any:      1,
	},
	"good for conversation": {
		Required: map[string]int{models.CategoryRestaurant: 1, models.CategoryCafe: 1},
		Any:      1,
	},
	"good for showing off on social media": {
		Required: map[string]int{models.CategoryCafe: 1, models.CategoryAttraction: 1},
		Any:      1,
	},
	"good for playing hooky": {
		Required: map[string]int{models.CategoryRestaurant: 1, models.CategoryCafe: 1, models.CategoryAttraction: 1},
	},
}

// LookupTheme returns the constraint for a theme keyword. The second return
// is false for unknown keywords, which are unconstrained.
func LookupTheme(keyword string) (models.ThemeConstraint, bool) {
	c, ok := themeConstraints[keyword]
	return c, ok
}

// ThemeKeywords lists every keyword with a defined constraint.
func ThemeKeywords() []string {
	keywords := make([]string, 0, len(themeConstraints))
	for k := range themeConstraints {
		keywords = append(keywords, k)
	}
	return keywords
}
