package models

import "time"

// GapMarker marks the blank in a fill-in-the-gap sentence
const GapMarker = "___"

// SentenceTemplate represents the last successfully generated gap sentence for a word
type SentenceTemplate struct {
	WordID      int       `json:"wordId"`
	Sentence    string    `json:"sentence"`
	CorrectForm string    `json:"correctForm"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
