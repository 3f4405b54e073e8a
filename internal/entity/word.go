package entity

import (
	"strings"
	"time"
)

// RelatedWords pairs an optional synonym/antonym annotation on a word.
type RelatedWords struct {
	Synonym string `json:"synonym"`
	Antonym string `json:"antonym"`
}

// Word is a vocabulary entry with linguistic metadata and study-progress
// fields. WordbookID always matches the wordbook collection the document
// lives under.
type Word struct {
	ID                 string        `json:"id"`
	WordbookID         string        `json:"wordbookId"`
	Text               string        `json:"text"`
	Phonetic           string        `json:"phonetic,omitempty"`
	Favorite           bool          `json:"favorite"`
	Translation        string        `json:"translation,omitempty"`
	PosIDs             []string      `json:"posIds,omitempty"`
	Example            string        `json:"example,omitempty"`
	ExampleTranslation string        `json:"exampleTranslation,omitempty"`
	Related            *RelatedWords `json:"related,omitempty"`
	Frequency          int32         `json:"frequency"`
	Mastery            int32         `json:"mastery"`
	Note               string        `json:"note,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	ReviewedAt         *time.Time    `json:"reviewedAt,omitempty"`
	StudyCount         int32         `json:"studyCount"`
}

// WordPatch carries a partial update. Nil fields are left untouched; the
// same patch is merged at the store and applied to any cached copy so the
// two stay in lockstep without a re-fetch.
type WordPatch struct {
	Text               *string
	Phonetic           *string
	Favorite           *bool
	Translation        *string
	PosIDs             *[]string
	Example            *string
	ExampleTranslation *string
	Related            *RelatedWords
	Frequency          *int32
	Mastery            *int32
	Note               *string
	ReviewedAt         *time.Time
	StudyCount         *int32
}

// IsZero reports whether the patch carries no changes.
func (p WordPatch) IsZero() bool {
	return p.Text == nil && p.Phonetic == nil && p.Favorite == nil &&
		p.Translation == nil && p.PosIDs == nil && p.Example == nil &&
		p.ExampleTranslation == nil && p.Related == nil && p.Frequency == nil &&
		p.Mastery == nil && p.Note == nil && p.ReviewedAt == nil && p.StudyCount == nil
}

// Apply merges the patch into a word value.
func (p WordPatch) Apply(w *Word) {
	if p.Text != nil {
		w.Text = *p.Text
	}
	if p.Phonetic != nil {
		w.Phonetic = *p.Phonetic
	}
	if p.Favorite != nil {
		w.Favorite = *p.Favorite
	}
	if p.Translation != nil {
		w.Translation = *p.Translation
	}
	if p.PosIDs != nil {
		w.PosIDs = append([]string(nil), (*p.PosIDs)...)
	}
	if p.Example != nil {
		w.Example = *p.Example
	}
	if p.ExampleTranslation != nil {
		w.ExampleTranslation = *p.ExampleTranslation
	}
	if p.Related != nil {
		related := *p.Related
		w.Related = &related
	}
	if p.Frequency != nil {
		w.Frequency = *p.Frequency
	}
	if p.Mastery != nil {
		w.Mastery = *p.Mastery
	}
	if p.Note != nil {
		w.Note = *p.Note
	}
	if p.ReviewedAt != nil {
		reviewed := *p.ReviewedAt
		w.ReviewedAt = &reviewed
	}
	if p.StudyCount != nil {
		w.StudyCount = *p.StudyCount
	}
}

// NormalizeWordText trims surrounding whitespace from the word text.
func NormalizeWordText(text string) string {
	return strings.TrimSpace(text)
}

// ResetStudyProgress clears mastery, study counter and review timestamp.
func (w *Word) ResetStudyProgress() {
	w.Mastery = 0
	w.StudyCount = 0
	w.ReviewedAt = nil
}
