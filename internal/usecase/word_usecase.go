package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/repository"
)

// WordUsecase encapsulates business logic for words within a wordbook,
// including the cache-first read path and the bulk operations.
type WordUsecase interface {
	ListWords(ctx context.Context, userID, wordbookID string) ([]entity.Word, error)
	CreateWord(ctx context.Context, userID, wordbookID string, word *entity.Word) (*entity.Word, error)
	UpdateWord(ctx context.Context, userID, wordbookID, id string, patch entity.WordPatch) error
	DeleteWord(ctx context.Context, userID, wordbookID, id string) error
	ImportWords(ctx context.Context, userID, wordbookID string, words []entity.Word) ([]entity.Word, error)
	ResetProgress(ctx context.Context, userID, wordbookID string, ids []string) error
	DeleteWords(ctx context.Context, userID, wordbookID string, ids []string) error
}

// NewWordUsecase wires the repository and the shared caches.
func NewWordUsecase(repo repository.WordRepository, caches *Caches) WordUsecase {
	return &wordUsecase{
		repo:   repo,
		caches: caches,
		clock:  time.Now,
	}
}

type wordUsecase struct {
	repo   repository.WordRepository
	caches *Caches
	clock  func() time.Time
}

// ListWords is a cache-first read-through. A cache hit is served verbatim:
// writes made by other processes since the entry was populated are not
// reflected, which is the documented staleness contract of the layer.
func (u *wordUsecase) ListWords(ctx context.Context, userID, wordbookID string) ([]entity.Word, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if wordbookID == "" {
		return nil, entity.ErrWordbookNotFound
	}
	key := wordsKey{UserID: userID, WordbookID: wordbookID}
	if words, ok := u.caches.Words.Get(key); ok {
		return slices.Clone(words), nil
	}
	words, err := u.repo.ListByWordbook(ctx, userID, wordbookID)
	if err != nil {
		return nil, err
	}
	u.caches.Words.Put(key, words)
	return slices.Clone(words), nil
}

func (u *wordUsecase) CreateWord(ctx context.Context, userID, wordbookID string, word *entity.Word) (*entity.Word, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if wordbookID == "" {
		return nil, entity.ErrWordbookNotFound
	}
	if word == nil {
		return nil, entity.ErrInvalidWordText
	}
	text := entity.NormalizeWordText(word.Text)
	if text == "" {
		return nil, entity.ErrInvalidWordText
	}

	draft := *word
	draft.Text = text
	draft.WordbookID = wordbookID
	draft.CreatedAt = u.clock()
	draft.ReviewedAt = nil
	draft.StudyCount = 0

	created, err := u.repo.Create(ctx, userID, &draft)
	if err != nil {
		return nil, err
	}
	u.caches.Words.Mutate(wordsKey{UserID: userID, WordbookID: wordbookID}, func(words []entity.Word) []entity.Word {
		return append(slices.Clone(words), *created)
	})
	return created, nil
}

func (u *wordUsecase) UpdateWord(ctx context.Context, userID, wordbookID, id string, patch entity.WordPatch) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if wordbookID == "" || id == "" {
		return entity.ErrWordNotFound
	}
	if text := patch.Text; text != nil {
		trimmed := entity.NormalizeWordText(*text)
		if trimmed == "" {
			return entity.ErrInvalidWordText
		}
		patch.Text = &trimmed
	}
	if patch.IsZero() {
		return nil
	}
	if err := u.repo.Update(ctx, userID, wordbookID, id, patch); err != nil {
		return err
	}
	// The cached copy is rewritten with the same patch, no re-fetch.
	u.caches.Words.Mutate(wordsKey{UserID: userID, WordbookID: wordbookID}, func(words []entity.Word) []entity.Word {
		out := slices.Clone(words)
		for i := range out {
			if out[i].ID == id {
				patch.Apply(&out[i])
			}
		}
		return out
	})
	return nil
}

func (u *wordUsecase) DeleteWord(ctx context.Context, userID, wordbookID, id string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if wordbookID == "" || id == "" {
		return entity.ErrWordNotFound
	}
	if err := u.repo.Delete(ctx, userID, wordbookID, id); err != nil {
		return err
	}
	u.caches.Words.Mutate(wordsKey{UserID: userID, WordbookID: wordbookID}, func(words []entity.Word) []entity.Word {
		return lo.Reject(words, func(w entity.Word, _ int) bool { return w.ID == id })
	})
	return nil
}

// ImportWords inserts all items as one atomic write batch. Identifiers
// are generated up front and the whole batch shares a single creation
// timestamp.
func (u *wordUsecase) ImportWords(ctx context.Context, userID, wordbookID string, words []entity.Word) ([]entity.Word, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if wordbookID == "" {
		return nil, entity.ErrWordbookNotFound
	}
	if len(words) == 0 {
		return nil, nil
	}

	now := u.clock()
	imported := make([]entity.Word, 0, len(words))
	for _, word := range words {
		text := entity.NormalizeWordText(word.Text)
		if text == "" {
			return nil, entity.ErrInvalidWordText
		}
		word.ID = uuid.NewString()
		word.Text = text
		word.WordbookID = wordbookID
		word.CreatedAt = now
		word.ReviewedAt = nil
		word.StudyCount = 0
		imported = append(imported, word)
	}

	if err := u.repo.BulkInsert(ctx, userID, wordbookID, imported); err != nil {
		return nil, err
	}

	key := wordsKey{UserID: userID, WordbookID: wordbookID}
	if _, ok := u.caches.Words.Get(key); ok {
		u.caches.Words.Mutate(key, func(cached []entity.Word) []entity.Word {
			return append(slices.Clone(cached), imported...)
		})
	} else {
		u.caches.Words.Put(key, slices.Clone(imported))
	}
	return imported, nil
}

func (u *wordUsecase) ResetProgress(ctx context.Context, userID, wordbookID string, ids []string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if wordbookID == "" {
		return entity.ErrWordbookNotFound
	}
	if len(ids) == 0 {
		return nil
	}
	if err := u.repo.ResetProgress(ctx, userID, wordbookID, ids); err != nil {
		return err
	}
	reset := lo.SliceToMap(ids, func(id string) (string, struct{}) { return id, struct{}{} })
	u.caches.Words.Mutate(wordsKey{UserID: userID, WordbookID: wordbookID}, func(words []entity.Word) []entity.Word {
		out := slices.Clone(words)
		for i := range out {
			if _, ok := reset[out[i].ID]; ok {
				out[i].ResetStudyProgress()
			}
		}
		return out
	})
	return nil
}

func (u *wordUsecase) DeleteWords(ctx context.Context, userID, wordbookID string, ids []string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if wordbookID == "" {
		return entity.ErrWordbookNotFound
	}
	if len(ids) == 0 {
		return nil
	}
	if err := u.repo.BulkDelete(ctx, userID, wordbookID, ids); err != nil {
		return err
	}
	removed := lo.SliceToMap(ids, func(id string) (string, struct{}) { return id, struct{}{} })
	u.caches.Words.Mutate(wordsKey{UserID: userID, WordbookID: wordbookID}, func(words []entity.Word) []entity.Word {
		return lo.Reject(words, func(w entity.Word, _ int) bool {
			_, ok := removed[w.ID]
			return ok
		})
	})
	return nil
}
