package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type OutcomeStatus string

const (
	OutcomeCorrect   OutcomeStatus = "correct"
	OutcomeIncorrect OutcomeStatus = "incorrect"
	OutcomeTimedOut  OutcomeStatus = "timed_out"
	OutcomeSkipped   OutcomeStatus = "skipped"
)

// ItemOutcome records how one item of a session ended.
type ItemOutcome struct {
	ItemID     string        `json:"item_id"`
	Question   string        `json:"question"`
	Status     OutcomeStatus `json:"status"`
	Correction string        `json:"correction,omitempty"`
	Points     int           `json:"points"`
}

type Mistake struct {
	ItemID     string `json:"item_id"`
	Question   string `json:"question"`
	Correction string `json:"correction"`
}

// ResultSummary is created once when a session completes and never mutated.
type ResultSummary struct {
	QuizID         string        `json:"quiz_id"`
	Hearts         int           `json:"hearts"`
	Score          int           `json:"score"`
	EarnedPoints   int           `json:"earned_points"`
	TotalPoints    int           `json:"total_points"`
	CorrectCount   int           `json:"correct_count"`
	IncorrectCount int           `json:"incorrect_count"`
	SkippedCount   int           `json:"skipped_count"`
	Elapsed        time.Duration `json:"elapsed"`
	Percentage     int           `json:"percentage"`
	Rating         string        `json:"rating"`
	XP             int           `json:"xp"`
	Outcomes       []ItemOutcome `json:"outcomes"`
	Mistakes       []Mistake     `json:"mistakes"`
	NeedsReview    []string      `json:"needs_review"`
}

// ElapsedClock formats the session duration as mm:ss.
func (r ResultSummary) ElapsedClock() string {
	secs := int(r.Elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// SessionResult is the persisted record of a completed session.
type SessionResult struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	SessionID      string         `json:"session_id" gorm:"not null;size:36;uniqueIndex"`
	QuizID         string         `json:"quiz_id" gorm:"not null;size:64;index"`
	LearnerID      string         `json:"learner_id" gorm:"not null;size:64;index"`
	Hearts         int            `json:"hearts"`
	Score          int            `json:"score"`
	EarnedPoints   int            `json:"earned_points"`
	TotalPoints    int            `json:"total_points"`
	CorrectCount   int            `json:"correct_count"`
	IncorrectCount int            `json:"incorrect_count"`
	SkippedCount   int            `json:"skipped_count"`
	ElapsedSeconds int            `json:"elapsed_seconds"`
	Percentage     int            `json:"percentage"`
	Rating         string         `json:"rating" gorm:"size:32"`
	XP             int            `json:"xp"`
	Outcomes       datatypes.JSON `json:"outcomes"`
	CompletedAt    time.Time      `json:"completed_at" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (SessionResult) TableName() string {
	return "session_results"
}
