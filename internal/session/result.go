package session

import (
	"math"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

// XPMultiplier converts earned points into experience points.
const XPMultiplier = 10

// Percentage is round(earned/total*100), or 0 when total is 0.
func Percentage(earned, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(earned) / float64(total) * 100))
}

// Rating labels a score percentage.
func Rating(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent!"
	case percentage >= 75:
		return "Great!"
	case percentage >= 60:
		return "Good"
	case percentage >= 40:
		return "Fair"
	default:
		return "Keep practicing"
	}
}

// Aggregate derives the final summary from the session counters.
func Aggregate(s SessionState) models.ResultSummary {
	percentage := Percentage(s.EarnedPoints, s.TotalPoints)

	summary := models.ResultSummary{
		Hearts:         s.Hearts,
		Score:          s.Score,
		EarnedPoints:   s.EarnedPoints,
		TotalPoints:    s.TotalPoints,
		CorrectCount:   s.CorrectCount,
		IncorrectCount: s.IncorrectCount,
		SkippedCount:   s.SkippedCount,
		Elapsed:        s.Elapsed,
		Percentage:     percentage,
		Rating:         Rating(percentage),
		XP:             s.EarnedPoints * XPMultiplier,
		Outcomes:       append([]models.ItemOutcome(nil), s.Outcomes...),
		Mistakes:       []models.Mistake{},
		NeedsReview:    []string{},
	}
	if s.Quiz != nil {
		summary.QuizID = s.Quiz.ID
	}

	for _, o := range s.Outcomes {
		switch o.Status {
		case models.OutcomeIncorrect, models.OutcomeTimedOut:
			summary.Mistakes = append(summary.Mistakes, models.Mistake{
				ItemID:     o.ItemID,
				Question:   o.Question,
				Correction: o.Correction,
			})
			summary.NeedsReview = append(summary.NeedsReview, o.ItemID)
		case models.OutcomeSkipped:
			summary.NeedsReview = append(summary.NeedsReview, o.ItemID)
		}
	}

	return summary
}
