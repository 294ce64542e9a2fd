package services

import (
	"errors"

	"github.com/ltalk/backend/internal/models"
)

var (
	// ErrValidation wraps every client input error
	ErrValidation = errors.New("validation error")
	// ErrUnsupportedExerciseType is returned for exercise types outside the closed set
	ErrUnsupportedExerciseType = models.ErrUnsupportedExerciseType
	// ErrWordSetNotFound is returned when a word set does not exist or is not visible to the user
	ErrWordSetNotFound = errors.New("word set not found")
	// ErrExerciseNotFound is returned when an exercise does not exist or belongs to another user
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrGenerationFailed is returned when model output is required and could not be obtained
	ErrGenerationFailed = errors.New("content generation failed")
	// ErrInvalidExercise is returned when a stored exercise cannot be graded
	ErrInvalidExercise = errors.New("stored exercise is invalid")
)
