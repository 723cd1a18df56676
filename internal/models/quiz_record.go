package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// QuizRecord is the persisted form of a QuizDefinition. Items are stored as
// a JSON column in their wire shape.
type QuizRecord struct {
	ID        string         `json:"id" gorm:"primaryKey;size:64"`
	Title     string         `json:"title" gorm:"not null;size:200"`
	SectionID string         `json:"section_id" gorm:"size:64;index"`
	Items     datatypes.JSON `json:"items"`
	ItemCount int            `json:"item_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (QuizRecord) TableName() string {
	return "quizzes"
}

func NewQuizRecord(quiz *QuizDefinition) (*QuizRecord, error) {
	items := quiz.Items
	if items == nil {
		items = []QuizItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz items: %w", err)
	}

	return &QuizRecord{
		ID:        quiz.ID,
		Title:     quiz.Title,
		SectionID: quiz.SectionID,
		Items:     data,
		ItemCount: len(items),
	}, nil
}

// ToDefinition decodes the stored items back into their variants.
func (r *QuizRecord) ToDefinition() (*QuizDefinition, error) {
	quiz := &QuizDefinition{
		ID:        r.ID,
		Title:     r.Title,
		SectionID: r.SectionID,
		Items:     []QuizItem{},
	}
	if len(r.Items) == 0 {
		return quiz, nil
	}
	if err := json.Unmarshal(r.Items, &quiz.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items of quiz %s: %w", r.ID, err)
	}
	return quiz, nil
}
