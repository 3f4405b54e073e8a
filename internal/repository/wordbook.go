package repository

import (
	"context"
	"time"

	"github.com/eslsoft/wordvault/internal/entity"
)

// WordbookRepository abstracts persistence for wordbooks to keep usecases
// storage agnostic.
type WordbookRepository interface {
	// List returns the user's non-trashed wordbooks in store order.
	List(ctx context.Context, userID string) ([]entity.Wordbook, error)

	// ListTrashed returns the user's trashed wordbooks.
	ListTrashed(ctx context.Context, userID string) ([]entity.Wordbook, error)

	Create(ctx context.Context, wordbook *entity.Wordbook) (*entity.Wordbook, error)

	// Rename updates the name field only.
	Rename(ctx context.Context, userID, id, name string) error

	// SetTrashed marks the wordbook trashed at the given instant.
	SetTrashed(ctx context.Context, userID, id string, trashedAt time.Time) error

	GetByID(ctx context.Context, userID, id string) (*entity.Wordbook, error)

	// Delete hard-deletes the wordbook and all of its words. The cascade
	// is committed as atomic write batches with the wordbook document
	// going last, so a surviving wordbook document always implies the
	// words may still exist, never the reverse.
	Delete(ctx context.Context, userID, id string) error
}
