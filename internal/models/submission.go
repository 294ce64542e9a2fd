package models

import "time"

// SubmissionRecord represents a stored, fully answered exercise submission
type SubmissionRecord struct {
	ID         int               `json:"id"`
	UserID     int               `json:"userId"`
	ExerciseID int               `json:"exerciseId"`
	Answers    map[string]string `json:"answers"`
	IsCorrect  bool              `json:"isCorrect"`
	Grade      string            `json:"grade"` // "correct/total"
	Feedback   string            `json:"feedback,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// QuestionResult represents the outcome of a single answered question
type QuestionResult struct {
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer Answer `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Feedback      string `json:"feedback,omitempty"`
}

// SubmissionResult represents the response to a submission
type SubmissionResult struct {
	ExerciseID   int                       `json:"exerciseId"`
	Results      map[string]QuestionResult `json:"results"`
	Feedback     map[string]string         `json:"feedback"`
	CorrectCount int                       `json:"correctCount"`
	Processed    int                       `json:"processed"`
	Total        int                       `json:"total"`
	Grade        string                    `json:"grade"`
	IsCorrect    bool                      `json:"isCorrect"`
	Saved        bool                      `json:"saved"`
	SubmissionID int                       `json:"submissionId,omitempty"`
}

// SubmitAnswersRequest represents an answers submission request
type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}
