package models

import "time"

// Category names used for LearningProgress rows.
const (
	CategoryVocabulary = "vocabulary"
	CategoryGrammar    = "grammar"
	CategoryReading    = "reading"
)

// LearningProgress tracks how many items of a category/subcategory
// (e.g. "vocabulary"/"N5") a user has completed.
type LearningProgress struct {
	// ID is the local auto-increment key; zero means not yet stored.
	ID int64

	UserID      string
	Category    string
	Subcategory string

	TotalItems     int
	CompletedItems int
	LastStudyDate  time.Time
}

// Percentage returns completion in the range 0..100. A row without items
// is 0% complete.
func (p LearningProgress) Percentage() float64 {
	if p.TotalItems <= 0 {
		return 0
	}
	return float64(p.CompletedItems) * 100 / float64(p.TotalItems)
}
