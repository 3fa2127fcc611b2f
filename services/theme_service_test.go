package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-server/models"
)

func TestLookupThemeKnownKeywords(t *testing.T) {
	tests := []struct {
		keyword  string
		required map[string]int
		any      int
	}{
		{"good for breaking a diet", map[string]int{models.CategoryRestaurant: 2}, 1},
		{"good for conversation", map[string]int{models.CategoryRestaurant: 1, models.CategoryCafe: 1}, 1},
		{"good for showing off on social media", map[string]int{models.CategoryCafe: 1, models.CategoryAttraction: 1}, 1},
		{"good for playing hooky", map[string]int{models.CategoryRestaurant: 1, models.CategoryCafe: 1, models.CategoryAttraction: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			c, ok := LookupTheme(tt.keyword)
			require.True(t, ok)
			assert.Equal(t, tt.required, c.Required)
			assert.Equal(t, tt.any, c.Any)

			// Every named theme constrains exactly the three stops.
			total := c.Any
			for _, n := range c.Required {
				total += n
			}
			assert.Equal(t, models.CourseSize, total)
		})
	}
}

func TestLookupThemeUnknownKeywordIsUnconstrained(t *testing.T) {
	c, ok := LookupTheme("good for stargazing")
	assert.False(t, ok)
	assert.Empty(t, c.Required)
	assert.Zero(t, c.Any)
}

func TestThemeKeywordsEnumeratesTable(t *testing.T) {
	keywords := ThemeKeywords()
	require.Len(t, keywords, 4)
	for _, kw := range keywords {
		_, ok := LookupTheme(kw)
		assert.True(t, ok)
	}
}
