// Package content serves the gateway's built-in learning material.
package content

import (
	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

// Catalog is a read-only set of vocabulary, grammar and reading material.
type Catalog struct {
	vocabulary []models.VocabularyItem
	grammar    []models.GrammarPoint
	reading    []models.ReadingPassage
}

// NewCatalog returns the built-in material.
func NewCatalog() *Catalog {
	return &Catalog{vocabulary: vocabulary, grammar: grammar, reading: reading}
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Vocabulary(level models.Level) []models.VocabularyItem {
	return filter(c.vocabulary, func(v models.VocabularyItem) bool { return v.Level == level })
}

func (c *Catalog) Grammar(level models.Level) []models.GrammarPoint {
	return filter(c.grammar, func(g models.GrammarPoint) bool { return g.Level == level })
}

func (c *Catalog) Readings(level models.Level) []models.ReadingPassage {
	return filter(c.reading, func(r models.ReadingPassage) bool { return r.Level == level })
}

// Reading returns the passage with id.
func (c *Catalog) Reading(id string) (models.ReadingPassage, bool) {
	for _, r := range c.reading {
		if r.ID == id {
			return r, true
		}
	}
	return models.ReadingPassage{}, false
}
