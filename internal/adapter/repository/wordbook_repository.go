package repository

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/infrastructure/docstore"
	repo "github.com/eslsoft/wordvault/internal/repository"
)

// deleteBatchSize caps the number of mutations per cascade batch.
const deleteBatchSize = 400

type wordbookRepository struct {
	store docstore.Store
}

// NewWordbookRepository constructs a docstore-backed wordbook repository.
func NewWordbookRepository(store docstore.Store) repo.WordbookRepository {
	return &wordbookRepository{store: store}
}

func (r *wordbookRepository) List(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	return r.listTrashedState(ctx, userID, false)
}

func (r *wordbookRepository) ListTrashed(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	return r.listTrashedState(ctx, userID, true)
}

func (r *wordbookRepository) listTrashedState(ctx context.Context, userID string, trashed bool) ([]entity.Wordbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.Query(ctx, wordbooksCollection(userID),
		docstore.Where("trashed", docstore.OpEqual, trashed))
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(doc docstore.Doc, _ int) entity.Wordbook {
		return decodeWordbook(doc.ID, doc.Data)
	}), nil
}

func (r *wordbookRepository) Create(ctx context.Context, wordbook *entity.Wordbook) (*entity.Wordbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := r.store.Add(ctx, wordbooksCollection(wordbook.UserID), encodeWordbook(wordbook))
	if err != nil {
		return nil, err
	}
	created := *wordbook
	created.ID = id
	return &created, nil
}

func (r *wordbookRepository) Rename(ctx context.Context, userID, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.store.Update(ctx, wordbookPath(userID, id), map[string]any{"name": name})
	return translateNoDocument(err, entity.ErrWordbookNotFound)
}

func (r *wordbookRepository) SetTrashed(ctx context.Context, userID, id string, trashedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.store.Update(ctx, wordbookPath(userID, id), map[string]any{
		"trashed":   true,
		"trashedAt": formatTime(trashedAt),
	})
	return translateNoDocument(err, entity.ErrWordbookNotFound)
}

func (r *wordbookRepository) GetByID(ctx context.Context, userID, id string) (*entity.Wordbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := r.store.Get(ctx, wordbookPath(userID, id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, entity.ErrWordbookNotFound
	}
	wb := decodeWordbook(id, data)
	return &wb, nil
}

func (r *wordbookRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docs, err := r.store.GetAll(ctx, wordsCollection(userID, id))
	if err != nil {
		return err
	}
	wordIDs := lo.Map(docs, func(doc docstore.Doc, _ int) string { return doc.ID })

	chunks := lo.Chunk(wordIDs, deleteBatchSize)
	if len(chunks) == 0 {
		chunks = [][]string{nil}
	}
	for i, chunk := range chunks {
		batch := r.store.Batch()
		for _, wordID := range chunk {
			batch.Delete(wordPath(userID, id, wordID))
		}
		if i == len(chunks)-1 {
			batch.Delete(wordbookPath(userID, id))
		}
		if err := batch.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}

func translateNoDocument(err, notFound error) error {
	if errors.Is(err, docstore.ErrNoDocument) {
		return notFound
	}
	return err
}
