package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/repository"
)

// WordbookUsecase encapsulates business logic for managing wordbooks and
// their trash lifecycle.
type WordbookUsecase interface {
	ListWordbooks(ctx context.Context, userID string) ([]entity.Wordbook, error)
	CreateWordbook(ctx context.Context, userID, name string) (*entity.Wordbook, error)
	RenameWordbook(ctx context.Context, userID, id, name string) error
	TrashWordbook(ctx context.Context, userID, id string) error
	ListTrashedWordbooks(ctx context.Context, userID string) ([]entity.Wordbook, error)
	EmptyTrash(ctx context.Context, userID string) error
	DeleteWordbook(ctx context.Context, userID, id string) error
	GetWordbook(ctx context.Context, userID, id string) (*entity.Wordbook, error)
}

// NewWordbookUsecase wires the repository with default behaviour.
func NewWordbookUsecase(repo repository.WordbookRepository, caches *Caches) WordbookUsecase {
	return &wordbookUsecase{
		repo:   repo,
		caches: caches,
		clock:  time.Now,
	}
}

type wordbookUsecase struct {
	repo   repository.WordbookRepository
	caches *Caches
	clock  func() time.Time
}

func (u *wordbookUsecase) ListWordbooks(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	return u.repo.List(ctx, userID)
}

func (u *wordbookUsecase) CreateWordbook(ctx context.Context, userID, name string) (*entity.Wordbook, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	name = entity.NormalizeWordbookName(name)
	if name == "" {
		return nil, entity.ErrInvalidWordbookName
	}

	// A single clock reading is both written to the store and returned,
	// so the stored and returned records agree.
	wordbook := &entity.Wordbook{
		UserID:    userID,
		Name:      name,
		Trashed:   false,
		CreatedAt: u.clock(),
	}
	return u.repo.Create(ctx, wordbook)
}

func (u *wordbookUsecase) RenameWordbook(ctx context.Context, userID, id, name string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if id == "" {
		return entity.ErrWordbookNotFound
	}
	name = entity.NormalizeWordbookName(name)
	if name == "" {
		return entity.ErrInvalidWordbookName
	}
	return u.repo.Rename(ctx, userID, id, name)
}

func (u *wordbookUsecase) TrashWordbook(ctx context.Context, userID, id string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if id == "" {
		return entity.ErrWordbookNotFound
	}
	return u.repo.SetTrashed(ctx, userID, id, u.clock())
}

func (u *wordbookUsecase) ListTrashedWordbooks(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	return u.repo.ListTrashed(ctx, userID)
}

func (u *wordbookUsecase) EmptyTrash(ctx context.Context, userID string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	trashed, err := u.repo.ListTrashed(ctx, userID)
	if err != nil {
		return err
	}
	for _, wordbook := range trashed {
		if err := u.repo.Delete(ctx, userID, wordbook.ID); err != nil {
			return err
		}
		u.caches.Words.Delete(wordsKey{UserID: userID, WordbookID: wordbook.ID})
	}
	return nil
}

func (u *wordbookUsecase) DeleteWordbook(ctx context.Context, userID, id string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if id == "" {
		return entity.ErrWordbookNotFound
	}
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	u.caches.Words.Delete(wordsKey{UserID: userID, WordbookID: id})
	return nil
}

func (u *wordbookUsecase) GetWordbook(ctx context.Context, userID, id string) (*entity.Wordbook, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if id == "" {
		return nil, entity.ErrWordbookNotFound
	}
	return u.repo.GetByID(ctx, userID, id)
}
