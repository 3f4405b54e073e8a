package entity

import (
	"strings"
	"time"
)

// Wordbook is a named collection of words owned by a single user.
// A trashed wordbook keeps its data and is excluded from the regular
// listing until it is hard-deleted together with its words.
type Wordbook struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Trashed   bool       `json:"trashed"`
	TrashedAt *time.Time `json:"trashedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NormalizeWordbookName trims surrounding whitespace; an empty result is
// rejected by the usecase layer.
func NormalizeWordbookName(name string) string {
	return strings.TrimSpace(name)
}
