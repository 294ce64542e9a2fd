package models

import "time"

// WordSet represents a user's vocabulary set
type WordSet struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	Words       []Word    `json:"words"`
}

// WordSetListItem represents a word set in list responses
type WordSetListItem struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	WordCount   int       `json:"wordCount"`
}

// CreateWordSetRequest represents a word set creation request
type CreateWordSetRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
	Words       []Word `json:"words"`
}

// WordSetScope selects which word sets are listed for a user
type WordSetScope string

const (
	WordSetScopeOwn    WordSetScope = "own"
	WordSetScopeOthers WordSetScope = "others"
)
