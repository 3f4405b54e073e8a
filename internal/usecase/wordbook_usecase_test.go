package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/wordvault/internal/cache"
	"github.com/eslsoft/wordvault/internal/entity"
)

func newWordbookUsecase(repo *fakeWordbookRepo, clock func() time.Time) (*wordbookUsecase, *Caches) {
	caches := NewCaches(cache.NeverExpire())
	if clock == nil {
		clock = time.Now
	}
	return &wordbookUsecase{repo: repo, caches: caches, clock: clock}, caches
}

func TestCreateWordbookStampsOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWordbookRepo()

	clockCalls := 0
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	uc, _ := newWordbookUsecase(repo, func() time.Time {
		clockCalls++
		return base.Add(time.Duration(clockCalls) * time.Second)
	})

	created, err := uc.CreateWordbook(ctx, "u1", "  Travel  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Travel" {
		t.Fatalf("name not normalized: %q", created.Name)
	}
	if clockCalls != 1 {
		t.Fatalf("clock read %d times, want 1", clockCalls)
	}

	stored, err := repo.GetByID(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("stored and returned timestamps differ: %v vs %v", stored.CreatedAt, created.CreatedAt)
	}
}

func TestCreateWordbookValidation(t *testing.T) {
	uc, _ := newWordbookUsecase(newFakeWordbookRepo(), nil)
	ctx := context.Background()

	if _, err := uc.CreateWordbook(ctx, "", "Travel"); !errors.Is(err, entity.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := uc.CreateWordbook(ctx, "u1", "   "); !errors.Is(err, entity.ErrInvalidWordbookName) {
		t.Fatalf("expected ErrInvalidWordbookName, got %v", err)
	}
}

func TestTrashWordbookMovesBetweenLists(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWordbookRepo()
	uc, _ := newWordbookUsecase(repo, nil)

	a, err := uc.CreateWordbook(ctx, "u1", "A")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := uc.CreateWordbook(ctx, "u1", "B")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.TrashWordbook(ctx, "u1", b.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	active, err := uc.ListWordbooks(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].ID != a.ID {
		t.Fatalf("active = %+v", active)
	}

	trashed, err := uc.ListTrashedWordbooks(ctx, "u1")
	if err != nil {
		t.Fatalf("list trashed: %v", err)
	}
	if len(trashed) != 1 || trashed[0].ID != b.ID || trashed[0].TrashedAt == nil {
		t.Fatalf("trashed = %+v", trashed)
	}
}

func TestTrashWordbookMissing(t *testing.T) {
	uc, _ := newWordbookUsecase(newFakeWordbookRepo(), nil)
	err := uc.TrashWordbook(context.Background(), "u1", "missing")
	if !errors.Is(err, entity.ErrWordbookNotFound) {
		t.Fatalf("expected ErrWordbookNotFound, got %v", err)
	}
}

func TestDeleteWordbookEvictsWordCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWordbookRepo()
	uc, caches := newWordbookUsecase(repo, nil)

	wb, err := uc.CreateWordbook(ctx, "u1", "A")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	caches.Words.Put(wordsKey{UserID: "u1", WordbookID: wb.ID}, []entity.Word{{ID: "w1"}})

	if err := uc.DeleteWordbook(ctx, "u1", wb.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := caches.Words.Get(wordsKey{UserID: "u1", WordbookID: wb.ID}); ok {
		t.Fatalf("word cache survived wordbook delete")
	}
	if _, err := uc.GetWordbook(ctx, "u1", wb.ID); !errors.Is(err, entity.ErrWordbookNotFound) {
		t.Fatalf("wordbook survived delete: %v", err)
	}
}

func TestEmptyTrashDeletesOnlyTrashed(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWordbookRepo()
	uc, caches := newWordbookUsecase(repo, nil)

	keep, err := uc.CreateWordbook(ctx, "u1", "Keep")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gone, err := uc.CreateWordbook(ctx, "u1", "Gone")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.TrashWordbook(ctx, "u1", gone.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	caches.Words.Put(wordsKey{UserID: "u1", WordbookID: gone.ID}, []entity.Word{{ID: "w1"}})

	if err := uc.EmptyTrash(ctx, "u1"); err != nil {
		t.Fatalf("empty trash: %v", err)
	}

	if _, err := uc.GetWordbook(ctx, "u1", keep.ID); err != nil {
		t.Fatalf("active wordbook deleted by empty trash: %v", err)
	}
	if _, err := uc.GetWordbook(ctx, "u1", gone.ID); !errors.Is(err, entity.ErrWordbookNotFound) {
		t.Fatalf("trashed wordbook survived: %v", err)
	}
	if _, ok := caches.Words.Get(wordsKey{UserID: "u1", WordbookID: gone.ID}); ok {
		t.Fatalf("word cache survived empty trash")
	}

	trashed, err := uc.ListTrashedWordbooks(ctx, "u1")
	if err != nil || len(trashed) != 0 {
		t.Fatalf("trash not empty: %+v, %v", trashed, err)
	}
}

func TestRenameWordbookValidation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWordbookRepo()
	uc, _ := newWordbookUsecase(repo, nil)

	wb, err := uc.CreateWordbook(ctx, "u1", "Old")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.RenameWordbook(ctx, "u1", wb.ID, " \t "); !errors.Is(err, entity.ErrInvalidWordbookName) {
		t.Fatalf("expected ErrInvalidWordbookName, got %v", err)
	}
	if err := uc.RenameWordbook(ctx, "u1", wb.ID, " New "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err := uc.GetWordbook(ctx, "u1", wb.ID)
	if err != nil || got.Name != "New" {
		t.Fatalf("renamed wordbook = %+v, %v", got, err)
	}
}
