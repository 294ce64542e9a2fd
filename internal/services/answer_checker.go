package services

import (
	"fmt"
	"strings"

	"github.com/ltalk/backend/internal/models"
)

// answerChecker implements AnswerChecker
type answerChecker struct{}

// NewAnswerChecker creates a new answer checker
func NewAnswerChecker() *answerChecker {
	return &answerChecker{}
}

// Check compares a user answer with the accepted forms of the correct answer
//
// Both sides are trimmed and compared case-insensitively.
// multiple_choice accepts any of the accepted forms; flashcard and fill_in_gap compare
// against the primary form. Any other exercise type returns ErrUnsupportedExerciseType.
func (c *answerChecker) Check(userAnswer string, correct models.Answer, exerciseType models.ExerciseType) (bool, error) {
	switch exerciseType {
	case models.ExerciseTypeMultipleChoice:
		for _, form := range correct {
			if equalNormalized(userAnswer, form) {
				return true, nil
			}
		}
		return false, nil
	case models.ExerciseTypeFlashcard, models.ExerciseTypeFillInGap:
		return equalNormalized(userAnswer, correct.First()), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedExerciseType, exerciseType)
	}
}

func equalNormalized(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
