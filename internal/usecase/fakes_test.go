package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eslsoft/wordvault/internal/entity"
)

type fakeWordbookRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*entity.Wordbook
}

func newFakeWordbookRepo() *fakeWordbookRepo {
	return &fakeWordbookRepo{items: make(map[string]*entity.Wordbook)}
}

func (r *fakeWordbookRepo) List(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	return r.list(ctx, userID, false)
}

func (r *fakeWordbookRepo) ListTrashed(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	return r.list(ctx, userID, true)
}

func (r *fakeWordbookRepo) list(ctx context.Context, userID string, trashed bool) ([]entity.Wordbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Wordbook
	for _, wb := range r.items {
		if wb.UserID == userID && wb.Trashed == trashed {
			out = append(out, *wb)
		}
	}
	return out, nil
}

func (r *fakeWordbookRepo) Create(ctx context.Context, wordbook *entity.Wordbook) (*entity.Wordbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	created := *wordbook
	created.ID = fmt.Sprintf("wb-%d", r.seq)
	r.items[created.ID] = &created
	result := created
	return &result, nil
}

func (r *fakeWordbookRepo) Rename(ctx context.Context, userID, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	wb, ok := r.items[id]
	if !ok || wb.UserID != userID {
		return entity.ErrWordbookNotFound
	}
	wb.Name = name
	return nil
}

func (r *fakeWordbookRepo) SetTrashed(ctx context.Context, userID, id string, trashedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	wb, ok := r.items[id]
	if !ok || wb.UserID != userID {
		return entity.ErrWordbookNotFound
	}
	wb.Trashed = true
	at := trashedAt
	wb.TrashedAt = &at
	return nil
}

func (r *fakeWordbookRepo) GetByID(ctx context.Context, userID, id string) (*entity.Wordbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	wb, ok := r.items[id]
	if !ok || wb.UserID != userID {
		return nil, entity.ErrWordbookNotFound
	}
	result := *wb
	return &result, nil
}

func (r *fakeWordbookRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if wb, ok := r.items[id]; ok && wb.UserID == userID {
		delete(r.items, id)
	}
	return nil
}

type bookKey struct {
	userID     string
	wordbookID string
}

type fakeWordRepo struct {
	mu        sync.Mutex
	seq       int
	items     map[bookKey]map[string]*entity.Word
	listCalls int
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{items: make(map[bookKey]map[string]*entity.Word)}
}

func (r *fakeWordRepo) bucket(key bookKey) map[string]*entity.Word {
	b, ok := r.items[key]
	if !ok {
		b = make(map[string]*entity.Word)
		r.items[key] = b
	}
	return b
}

// put bypasses the usecase, standing in for a write made by another
// process against the shared store.
func (r *fakeWordRepo) put(userID string, word entity.Word) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := word
	r.bucket(bookKey{userID, word.WordbookID})[word.ID] = &copy
}

func (r *fakeWordRepo) ListByWordbook(ctx context.Context, userID, wordbookID string) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []entity.Word
	for _, w := range r.bucket(bookKey{userID, wordbookID}) {
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWordRepo) Create(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	created := *word
	created.ID = fmt.Sprintf("w-%d", r.seq)
	r.bucket(bookKey{userID, created.WordbookID})[created.ID] = &created
	result := created
	return &result, nil
}

func (r *fakeWordRepo) Update(ctx context.Context, userID, wordbookID, id string, patch entity.WordPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.bucket(bookKey{userID, wordbookID})[id]
	if !ok {
		return entity.ErrWordNotFound
	}
	patch.Apply(w)
	return nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, userID, wordbookID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bucket(bookKey{userID, wordbookID}), id)
	return nil
}

func (r *fakeWordRepo) BulkInsert(ctx context.Context, userID, wordbookID string, words []entity.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bucket(bookKey{userID, wordbookID})
	for i := range words {
		copy := words[i]
		b[copy.ID] = &copy
	}
	return nil
}

func (r *fakeWordRepo) ResetProgress(ctx context.Context, userID, wordbookID string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bucket(bookKey{userID, wordbookID})
	for _, id := range ids {
		w, ok := b[id]
		if !ok {
			return entity.ErrWordNotFound
		}
		w.ResetStudyProgress()
	}
	return nil
}

func (r *fakeWordRepo) BulkDelete(ctx context.Context, userID, wordbookID string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bucket(bookKey{userID, wordbookID})
	for _, id := range ids {
		delete(b, id)
	}
	return nil
}

func (r *fakeWordRepo) ListByPosTag(ctx context.Context, userID, wordbookID, tagID string) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Word
	for _, w := range r.bucket(bookKey{userID, wordbookID}) {
		for _, id := range w.PosIDs {
			if id == tagID {
				out = append(out, *w)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeWordRepo) ReplacePosIDs(ctx context.Context, userID, wordbookID string, posIDs map[string][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bucket(bookKey{userID, wordbookID})
	for id, ids := range posIDs {
		w, ok := b[id]
		if !ok {
			return entity.ErrWordNotFound
		}
		w.PosIDs = append([]string(nil), ids...)
	}
	return nil
}

type fakePosTagRepo struct {
	mu        sync.Mutex
	seq       int
	items     map[string]*entity.PosTag
	listCalls int
}

func newFakePosTagRepo() *fakePosTagRepo {
	return &fakePosTagRepo{items: make(map[string]*entity.PosTag)}
}

func (r *fakePosTagRepo) List(ctx context.Context, userID string) ([]entity.PosTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []entity.PosTag
	for _, tag := range r.items {
		if tag.UserID == userID {
			out = append(out, *tag)
		}
	}
	return out, nil
}

func (r *fakePosTagRepo) Create(ctx context.Context, tag *entity.PosTag) (*entity.PosTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	created := *tag
	created.ID = fmt.Sprintf("tag-%d", r.seq)
	r.items[created.ID] = &created
	result := created
	return &result, nil
}

func (r *fakePosTagRepo) Update(ctx context.Context, userID, id string, patch entity.PosTagPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tag, ok := r.items[id]
	if !ok || tag.UserID != userID {
		return entity.ErrPosTagNotFound
	}
	patch.Apply(tag)
	return nil
}

func (r *fakePosTagRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tag, ok := r.items[id]; ok && tag.UserID == userID {
		delete(r.items, id)
	}
	return nil
}
