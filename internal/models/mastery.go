package models

const (
	// LearnedMinCorrect is the number of correct attempts required before a word can be learned
	LearnedMinCorrect = 3
	// LearnedMinAccuracyPercent is the minimal share of correct attempts for a learned word
	LearnedMinAccuracyPercent = 70
)

// MasteryRecord represents a user's progress on a single word
//
// Learned always equals IsLearned() after Apply; counters are never decremented.
type MasteryRecord struct {
	ID                int  `json:"id"`
	UserID            int  `json:"userId"`
	WordID            int  `json:"wordId"`
	CorrectAttempts   int  `json:"correctAttempts"`
	IncorrectAttempts int  `json:"incorrectAttempts"`
	Learned           bool `json:"learned"`
}

// Attempts returns the total number of recorded attempts
func (m *MasteryRecord) Attempts() int {
	return m.CorrectAttempts + m.IncorrectAttempts
}

// Accuracy returns the share of correct attempts in the [0, 1] range
func (m *MasteryRecord) Accuracy() float64 {
	if m.Attempts() == 0 {
		return 0
	}
	return float64(m.CorrectAttempts) / float64(m.Attempts())
}

// IsLearned reports whether the counters satisfy the learned rule
//
// A word is learned once it has at least LearnedMinCorrect correct attempts
// and at least LearnedMinAccuracyPercent of all attempts were correct.
func (m *MasteryRecord) IsLearned() bool {
	if m.CorrectAttempts < LearnedMinCorrect {
		return false
	}
	// Integer comparison keeps 7/10 exactly on the threshold
	return m.CorrectAttempts*100 >= m.Attempts()*LearnedMinAccuracyPercent
}

// Apply records a single attempt and recomputes Learned
func (m *MasteryRecord) Apply(wasCorrect bool) {
	if wasCorrect {
		m.CorrectAttempts++
	} else {
		m.IncorrectAttempts++
	}
	m.Learned = m.IsLearned()
}

// IsDue reports whether a word with the given record should be practiced again
//
// A missing record is always due.
func IsDue(record *MasteryRecord) bool {
	return record == nil || !record.Learned
}

// MasteryResponse represents a mastery record together with its word in API responses
type MasteryResponse struct {
	WordID            int     `json:"wordId"`
	Word              string  `json:"word"`
	Translation       string  `json:"translation"`
	CorrectAttempts   int     `json:"correctAttempts"`
	IncorrectAttempts int     `json:"incorrectAttempts"`
	Learned           bool    `json:"learned"`
	Accuracy          float64 `json:"accuracy"`
}
