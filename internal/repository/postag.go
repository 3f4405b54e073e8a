package repository

import (
	"context"

	"github.com/eslsoft/wordvault/internal/entity"
)

// PosTagRepository abstracts persistence for part-of-speech tags.
type PosTagRepository interface {
	List(ctx context.Context, userID string) ([]entity.PosTag, error)
	Create(ctx context.Context, tag *entity.PosTag) (*entity.PosTag, error)
	Update(ctx context.Context, userID, id string, patch entity.PosTagPatch) error
	Delete(ctx context.Context, userID, id string) error
}
