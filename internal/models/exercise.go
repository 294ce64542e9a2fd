package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ErrUnsupportedExerciseType is returned for exercise types outside the closed set
var ErrUnsupportedExerciseType = errors.New("unsupported exercise type")

// ExerciseType represents a kind of practice exercise
type ExerciseType string

const (
	ExerciseTypeFlashcard      ExerciseType = "flashcard"
	ExerciseTypeMultipleChoice ExerciseType = "multiple_choice"
	ExerciseTypeFillInGap      ExerciseType = "fill_in_gap"
)

// IsValid reports whether t is one of the supported exercise types
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseTypeFlashcard, ExerciseTypeMultipleChoice, ExerciseTypeFillInGap:
		return true
	}
	return false
}

// ParseExerciseType converts a raw string into an ExerciseType
func ParseExerciseType(s string) (ExerciseType, error) {
	t := ExerciseType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExerciseType, s)
	}
	return t, nil
}

// Question represents one exercise question payload
//
// Only the fields relevant to the exercise type are set:
// flashcard uses Front/Back, multiple_choice uses Question/Choices,
// fill_in_gap uses Sentence/Hint.
type Question struct {
	Front    string   `json:"front,omitempty"`
	Back     string   `json:"back,omitempty"`
	Question string   `json:"question,omitempty"`
	Choices  []string `json:"choices,omitempty"`
	Sentence string   `json:"sentence,omitempty"`
	Hint     string   `json:"hint,omitempty"`
}

// Answer holds the accepted forms of a correct answer
//
// It is encoded as a JSON string when it has a single form and as an array otherwise.
type Answer []string

// NewAnswer creates an answer from one or more accepted forms
func NewAnswer(forms ...string) Answer {
	return Answer(forms)
}

// First returns the primary accepted form
func (a Answer) First() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// MarshalJSON implements json.Marshaler
func (a Answer) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Answer) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Answer{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	*a = Answer(many)
	return nil
}

// Exercise represents a generated exercise for a word set
//
// Questions and CorrectAnswers always share the same key set.
// Keys are positional indices starting at "0".
type Exercise struct {
	ID             int                 `json:"id"`
	UserID         int                 `json:"userId"`
	WordSetID      int                 `json:"wordSetId"`
	Type           ExerciseType        `json:"type"`
	Questions      map[string]Question `json:"questions"`
	CorrectAnswers map[string]Answer   `json:"-"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// QuestionKeys returns the question keys in positional order
func (e *Exercise) QuestionKeys() []string {
	return SortedKeys(e.Questions)
}

// PositionKey returns the question key for the given position
func PositionKey(i int) string {
	return strconv.Itoa(i)
}

// SortedKeys returns map keys ordered numerically when possible and lexically otherwise
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

// CreateExerciseRequest represents an exercise creation request
type CreateExerciseRequest struct {
	WordSetID int    `json:"wordSetId"`
	Type      string `json:"type"`
}
