package services

import (
	"fmt"
	"log"
	"math"

	"course-server/models"
)

// crowdLevelWeights maps the ordered crowd levels to their score weight.
// Lower total score means a less congested, better candidate.
var crowdLevelWeights = map[models.CrowdLevel]float64{
	models.CrowdRelaxed: 10,
	models.CrowdNormal:  20,
	models.CrowdBusy:    30,
	models.CrowdCrowded: 40,
}

// ScoreTable maps place ID -> time slot -> congestion score.
type ScoreTable map[string]map[string]float64

// ScoreSample computes the congestion score for one time-slot sample:
// crowd-level weight, plus 0.1 per 1000 of the population estimate, plus
// the rating offset from 5.0.
func ScoreSample(sample models.CongestionSample, rating float64) (float64, error) {
	weight, ok := crowdLevelWeights[sample.Level]
	if !ok {
		return 0, fmt.Errorf("unknown crowd level %q", sample.Level)
	}
	return weight + 0.1*math.Floor(float64(sample.MinPopulation)/1000) + (rating - 5.0), nil
}

// ScorePlace scores every congestion sample of a place, keyed by time slot.
func ScorePlace(p models.Place) (map[string]float64, error) {
	scores := make(map[string]float64, len(p.Samples))
	for _, sample := range p.Samples {
		score, err := ScoreSample(sample, p.Rating)
		if err != nil {
			return nil, fmt.Errorf("place %s: %w", p.ID, err)
		}
		scores[sample.TimeSlot] = score
	}
	return scores, nil
}

// BuildScoreTable scores all candidates. A place with an unrecognized crowd
// level is dropped from the table rather than aborting the whole request.
func BuildScoreTable(places []models.Place) ScoreTable {
	table := make(ScoreTable, len(places))
	for _, p := range places {
		scores, err := ScorePlace(p)
		if err != nil {
			log.Printf("Skipping unscorable place %s: %v", p.ID, err)
			continue
		}
		table[p.ID] = scores
	}
	return table
}
