package models

// Word represents a vocabulary entry shared between word sets by its surface form
type Word struct {
	ID          int    `json:"id"`
	Word        string `json:"word"`       // Surface form, unique
	Infinitive  string `json:"infinitive"` // Lemma
	Translation string `json:"translation"`
}
