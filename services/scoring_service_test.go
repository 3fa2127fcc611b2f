package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-server/models"
)

func TestScoreSample(t *testing.T) {
	tests := []struct {
		name     string
		level    models.CrowdLevel
		minPop   int
		rating   float64
		expected float64
	}{
		{
			name:     "normal level with population and rating offsets",
			level:    models.CrowdNormal,
			minPop:   2500,
			rating:   4.2,
			expected: 19.4, // 20 + 0.2 - 0.8
		},
		{
			name:     "relaxed level at neutral rating",
			level:    models.CrowdRelaxed,
			minPop:   0,
			rating:   5.0,
			expected: 10,
		},
		{
			name:     "busy level, population just under a step",
			level:    models.CrowdBusy,
			minPop:   999,
			rating:   5.0,
			expected: 30,
		},
		{
			name:     "crowded level with high population",
			level:    models.CrowdCrowded,
			minPop:   12000,
			rating:   3.5,
			expected: 40 + 1.2 - 1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ScoreSample(models.CongestionSample{
				TimeSlot:      "12:00",
				Level:         tt.level,
				MinPopulation: tt.minPop,
			}, tt.rating)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestScoreSampleUnknownLevel(t *testing.T) {
	_, err := ScoreSample(models.CongestionSample{TimeSlot: "12:00", Level: "packed"}, 4.0)
	assert.Error(t, err)
}

func TestScorePlace(t *testing.T) {
	place := models.Place{
		ID:     "1",
		Rating: 4.0,
		Samples: []models.CongestionSample{
			{TimeSlot: "12:00", Level: models.CrowdRelaxed, MinPopulation: 1000},
			{TimeSlot: "15:00", Level: models.CrowdNormal, MinPopulation: 3000},
			{TimeSlot: "18:00", Level: models.CrowdCrowded, MinPopulation: 500},
		},
	}

	scores, err := ScorePlace(place)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.InDelta(t, 9.1, scores["12:00"], 1e-9)
	assert.InDelta(t, 19.3, scores["15:00"], 1e-9)
	assert.InDelta(t, 39.0, scores["18:00"], 1e-9)
}

func TestBuildScoreTableSkipsUnscorablePlaces(t *testing.T) {
	places := []models.Place{
		{
			ID:      "good",
			Rating:  5.0,
			Samples: []models.CongestionSample{{TimeSlot: "12:00", Level: models.CrowdRelaxed}},
		},
		{
			ID:      "bad",
			Rating:  5.0,
			Samples: []models.CongestionSample{{TimeSlot: "12:00", Level: "swarming"}},
		},
	}

	table := BuildScoreTable(places)
	require.Len(t, table, 1)
	assert.Contains(t, table, "good")
	assert.NotContains(t, table, "bad")
}
