package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/infrastructure/docstore"
	repo "github.com/eslsoft/wordvault/internal/repository"
)

type wordRepository struct {
	store docstore.Store
}

// NewWordRepository constructs a docstore-backed word repository.
func NewWordRepository(store docstore.Store) repo.WordRepository {
	return &wordRepository{store: store}
}

func (r *wordRepository) ListByWordbook(ctx context.Context, userID, wordbookID string) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.GetAll(ctx, wordsCollection(userID, wordbookID))
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(doc docstore.Doc, _ int) entity.Word {
		return decodeWord(doc.ID, doc.Data)
	}), nil
}

func (r *wordRepository) Create(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := r.store.Add(ctx, wordsCollection(userID, word.WordbookID), encodeWord(word))
	if err != nil {
		return nil, err
	}
	created := *word
	created.ID = id
	return &created, nil
}

func (r *wordRepository) Update(ctx context.Context, userID, wordbookID, id string, patch entity.WordPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := wordPatchFields(patch)
	if len(fields) == 0 {
		return nil
	}
	err := r.store.Update(ctx, wordPath(userID, wordbookID, id), fields)
	return translateNoDocument(err, entity.ErrWordNotFound)
}

func (r *wordRepository) Delete(ctx context.Context, userID, wordbookID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Delete(ctx, wordPath(userID, wordbookID, id))
}

func (r *wordRepository) BulkInsert(ctx context.Context, userID, wordbookID string, words []entity.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	batch := r.store.Batch()
	for i := range words {
		word := words[i]
		batch.Set(wordPath(userID, wordbookID, word.ID), encodeWord(&word))
	}
	return batch.Commit(ctx)
}

func (r *wordRepository) ResetProgress(ctx context.Context, userID, wordbookID string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	batch := r.store.Batch()
	for _, id := range ids {
		batch.Update(wordPath(userID, wordbookID, id), map[string]any{
			"mastery":    0,
			"studyCount": 0,
			"reviewedAt": nil,
		})
	}
	return translateNoDocument(batch.Commit(ctx), entity.ErrWordNotFound)
}

func (r *wordRepository) BulkDelete(ctx context.Context, userID, wordbookID string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	batch := r.store.Batch()
	for _, id := range ids {
		batch.Delete(wordPath(userID, wordbookID, id))
	}
	return batch.Commit(ctx)
}

func (r *wordRepository) ListByPosTag(ctx context.Context, userID, wordbookID, tagID string) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.Query(ctx, wordsCollection(userID, wordbookID),
		docstore.Where("posIds", docstore.OpArrayContains, tagID))
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(doc docstore.Doc, _ int) entity.Word {
		return decodeWord(doc.ID, doc.Data)
	}), nil
}

func (r *wordRepository) ReplacePosIDs(ctx context.Context, userID, wordbookID string, posIDs map[string][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(posIDs) == 0 {
		return nil
	}
	batch := r.store.Batch()
	for id, ids := range posIDs {
		batch.Update(wordPath(userID, wordbookID, id), map[string]any{
			"posIds": emptyIfNil(ids),
		})
	}
	return translateNoDocument(batch.Commit(ctx), entity.ErrWordNotFound)
}
