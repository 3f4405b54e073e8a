package repository

import (
	"context"

	"github.com/eslsoft/wordvault/internal/entity"
)

// WordRepository abstracts persistence for words within a wordbook.
type WordRepository interface {
	// ListByWordbook returns every word in the wordbook in store order.
	ListByWordbook(ctx context.Context, userID, wordbookID string) ([]entity.Word, error)

	// Create inserts a word with a store-assigned identifier.
	Create(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error)

	// Update partially merges the patch into the stored document.
	Update(ctx context.Context, userID, wordbookID, id string, patch entity.WordPatch) error

	Delete(ctx context.Context, userID, wordbookID, id string) error

	// BulkInsert commits pre-identified words as one atomic write batch.
	BulkInsert(ctx context.Context, userID, wordbookID string, words []entity.Word) error

	// ResetProgress clears mastery, study count and review timestamp for
	// the given ids in one atomic write batch.
	ResetProgress(ctx context.Context, userID, wordbookID string, ids []string) error

	// BulkDelete removes the given ids in one atomic write batch.
	BulkDelete(ctx context.Context, userID, wordbookID string, ids []string) error

	// ListByPosTag returns the wordbook's words whose part-of-speech list
	// contains the tag id.
	ListByPosTag(ctx context.Context, userID, wordbookID, tagID string) ([]entity.Word, error)

	// ReplacePosIDs rewrites the part-of-speech list of each listed word
	// in one atomic write batch, keyed by word id.
	ReplacePosIDs(ctx context.Context, userID, wordbookID string, posIDs map[string][]string) error
}
