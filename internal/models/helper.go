package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// NewSessionResult builds the persisted record for a completed session.
func NewSessionResult(sessionID, learnerID string, summary ResultSummary, completedAt time.Time) (*SessionResult, error) {
	outcomes, err := json.Marshal(summary.Outcomes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcomes: %w", err)
	}

	return &SessionResult{
		SessionID:      sessionID,
		QuizID:         summary.QuizID,
		LearnerID:      learnerID,
		Hearts:         summary.Hearts,
		Score:          summary.Score,
		EarnedPoints:   summary.EarnedPoints,
		TotalPoints:    summary.TotalPoints,
		CorrectCount:   summary.CorrectCount,
		IncorrectCount: summary.IncorrectCount,
		SkippedCount:   summary.SkippedCount,
		ElapsedSeconds: int(summary.Elapsed / time.Second),
		Percentage:     summary.Percentage,
		Rating:         summary.Rating,
		XP:             summary.XP,
		Outcomes:       outcomes,
		CompletedAt:    completedAt,
	}, nil
}

// DecodeOutcomes unmarshals the stored per-item outcomes.
func (r *SessionResult) DecodeOutcomes() ([]ItemOutcome, error) {
	var outcomes []ItemOutcome
	if len(r.Outcomes) == 0 {
		return outcomes, nil
	}
	if err := json.Unmarshal(r.Outcomes, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcomes: %w", err)
	}
	return outcomes, nil
}
