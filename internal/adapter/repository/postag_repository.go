package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/infrastructure/docstore"
	repo "github.com/eslsoft/wordvault/internal/repository"
)

type posTagRepository struct {
	store docstore.Store
}

// NewPosTagRepository constructs a docstore-backed tag repository.
func NewPosTagRepository(store docstore.Store) repo.PosTagRepository {
	return &posTagRepository{store: store}
}

func (r *posTagRepository) List(ctx context.Context, userID string) ([]entity.PosTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.GetAll(ctx, posTagsCollection(userID))
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(doc docstore.Doc, _ int) entity.PosTag {
		return decodePosTag(doc.ID, doc.Data)
	}), nil
}

func (r *posTagRepository) Create(ctx context.Context, tag *entity.PosTag) (*entity.PosTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := r.store.Add(ctx, posTagsCollection(tag.UserID), encodePosTag(tag))
	if err != nil {
		return nil, err
	}
	created := *tag
	created.ID = id
	return &created, nil
}

func (r *posTagRepository) Update(ctx context.Context, userID, id string, patch entity.PosTagPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := posTagPatchFields(patch)
	if len(fields) == 0 {
		return nil
	}
	err := r.store.Update(ctx, posTagPath(userID, id), fields)
	return translateNoDocument(err, entity.ErrPosTagNotFound)
}

func (r *posTagRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Delete(ctx, posTagPath(userID, id))
}
