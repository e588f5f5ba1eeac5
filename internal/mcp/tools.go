package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// SuggestionResult is returned by get_suggestion.
type SuggestionResult struct {
	Suggestion suggest.Suggestion `json:"suggestion"`
	Date       string             `json:"date,omitempty"`
	Mood       int                `json:"mood"`
	Hours      float64            `json:"screen_time_hours"`
	Usage      wellness.UsageBand `json:"usage"`
	Preview    bool               `json:"preview"`
}

var (
	noArgsSchema = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)

	suggestionSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"mood":{"type":"integer","minimum":1,"maximum":5,"description":"Mood rating to preview (omit to use the latest entry)"},` +
		`"screen_time_hours":{"type":"number","minimum":0,"maximum":24},` +
		`"breakdown":{"type":"object","properties":{"study":{"type":"number"},"social":{"type":"number"},"entertainment":{"type":"number"}}}` +
		`},"additionalProperties":false}`)
)

func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_suggestion",
		Description: "Today's digital-detox suggestion. With mood and screen time it previews a suggestion without logging anything.",
		InputSchema: suggestionSchema,
		Handler:     s.handleGetSuggestion,
	})
	s.registerTool(toolDef{
		Name:        "get_insight",
		Description: "How screen time and mood have moved together over the recent history window.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetInsight,
	})
	s.registerTool(toolDef{
		Name:        "get_wellness_status",
		Description: "Screen-free streak, XP, level, badges and journal counts.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetStatus,
	})
}

type suggestionArgs struct {
	Mood       *int                `json:"mood"`
	ScreenTime float64             `json:"screen_time_hours"`
	Breakdown  *wellness.Breakdown `json:"breakdown"`
}

func (s *Server) handleGetSuggestion(_ context.Context, args json.RawMessage) (any, error) {
	var a suggestionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if a.Mood != nil {
		in := tracker.EntryInput{Mood: *a.Mood, ScreenTime: a.ScreenTime, Breakdown: a.Breakdown}
		sug, err := s.tracker.Preview(in)
		if err != nil {
			return nil, err
		}
		hours := a.ScreenTime
		if a.Breakdown != nil {
			hours = a.Breakdown.Total()
		}
		return SuggestionResult{
			Suggestion: sug,
			Mood:       *a.Mood,
			Hours:      hours,
			Usage:      wellness.ClassifyUsage(hours),
			Preview:    true,
		}, nil
	}

	sug, latest, err := s.tracker.Suggestion()
	if err != nil {
		return nil, err
	}
	return SuggestionResult{
		Suggestion: sug,
		Date:       latest.Date,
		Mood:       int(latest.Mood),
		Hours:      latest.ScreenTimeHours(),
		Usage:      wellness.ClassifyUsage(latest.ScreenTimeHours()),
	}, nil
}

func (s *Server) handleGetInsight(ctx context.Context, _ json.RawMessage) (any, error) {
	return s.tracker.Insight(ctx)
}

func (s *Server) handleGetStatus(_ context.Context, _ json.RawMessage) (any, error) {
	return s.tracker.Status(), nil
}
