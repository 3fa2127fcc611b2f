package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"course-server/models"
)

// SelectionOracle picks an ordered three-stop course per theme keyword from
// the scored candidate set. Implementations may be remote and may fail; the
// assembler treats any error as recoverable.
type SelectionOracle interface {
	SelectCourses(ctx context.Context, district string, keywords []string, constraints map[string]models.ThemeConstraint, table ScoreTable, candidates []models.Place) (map[string][]string, error)
}

// ModelOracle satisfies SelectionOracle with a messages-style generative
// model API. The model receives the precomputed score table and the category
// rules and must answer with a strict JSON course mapping.
type ModelOracle struct {
	endpoint string
	apiKey   string
	modelID  string
	client   *http.Client
}

func NewModelOracle(endpoint, apiKey, modelID string) *ModelOracle {
	return &ModelOracle{
		endpoint: endpoint,
		apiKey:   apiKey,
		modelID:  modelID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

const oracleSystemPrompt = "You are a manager who plans appointment schedules for a day. " +
	"Create an itinerary tailored to specific keywords using information about a given location."

type oracleMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oracleRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system"`
	Messages    []oracleMessage `json:"messages"`
}

type oracleResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (o *ModelOracle) SelectCourses(ctx context.Context, district string, keywords []string, constraints map[string]models.ThemeConstraint, table ScoreTable, candidates []models.Place) (map[string][]string, error) {
	if len(keywords) != 3 {
		return nil, fmt.Errorf("expected 3 theme keywords, got %d", len(keywords))
	}
	prompt, err := buildOraclePrompt(district, keywords, constraints, table, candidates)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(oracleRequest{
		Model:       o.modelID,
		MaxTokens:   1024,
		Temperature: 0.3,
		System:      oracleSystemPrompt,
		Messages:    []oracleMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var payload oracleResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("oracle response not parseable: %w", err)
	}

	var text string
	for _, block := range payload.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("oracle response contained no text block")
	}

	var courses struct {
		Courses map[string][]string `json:"courses"`
	}
	if err := json.Unmarshal([]byte(text), &courses); err != nil {
		return nil, fmt.Errorf("oracle course payload not parseable: %w", err)
	}
	return courses.Courses, nil
}

// buildOraclePrompt encodes the candidate data, the score table, and the
// per-keyword category rules into one instruction, demanding a strict JSON
// response so the caller can validate the identifiers.
func buildOraclePrompt(district string, keywords []string, constraints map[string]models.ThemeConstraint, table ScoreTable, candidates []models.Place) (string, error) {
	type candidateInfo struct {
		ID       string             `json:"id"`
		Name     string             `json:"name"`
		Category string             `json:"category"`
		Rating   float64            `json:"rating"`
		Scores   map[string]float64 `json:"congestion_scores"`
	}
	infos := make([]candidateInfo, 0, len(candidates))
	for _, p := range candidates {
		scores, ok := table[p.ID]
		if !ok {
			continue
		}
		infos = append(infos, candidateInfo{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Rating:   p.Rating,
			Scores:   scores,
		})
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no scorable candidates for district %s", district)
	}
	placeInfo, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The following is the full place data for district %s, with a precomputed congestion score per place and time of day (lower is less crowded):\n%s\n\n", district, placeInfo)
	b.WriteString("Recommend one course per keyword below. A course is exactly 3 places with an overall low congestion score.\n")
	for i, kw := range keywords {
		fmt.Fprintf(&b, "Course %d: a low-congestion %q course\n", i+1, kw)
	}
	b.WriteString("The order of places within a course follows each place's lowest-congestion time of day.\n")
	for _, kw := range keywords {
		c, ok := constraints[kw]
		if !ok {
			continue
		}
		cats := make([]string, 0, len(c.Required))
		for cat := range c.Required {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		var parts []string
		for _, cat := range cats {
			parts = append(parts, fmt.Sprintf("%d of category %q", c.Required[cat], cat))
		}
		if c.Any > 0 {
			parts = append(parts, fmt.Sprintf("%d of any category", c.Any))
		}
		fmt.Fprintf(&b, "For keyword %q the course must include %s.\n", kw, strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, "Use only ids that appear in the place data above. Never invent an id.\n")
	fmt.Fprintf(&b, "Respond with only this JSON and nothing else: {\"courses\": {%q: [\"id\", \"id\", \"id\"], %q: [\"id\", \"id\", \"id\"], %q: [\"id\", \"id\", \"id\"]}}\n",
		keywords[0], keywords[1], keywords[2])
	return b.String(), nil
}
