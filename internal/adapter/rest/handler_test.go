package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/wordvault/internal/entity"
)

type fakeWordbookUC struct {
	wordbooks map[string]*entity.Wordbook
	trashed   []string
}

func newFakeWordbookUC() *fakeWordbookUC {
	return &fakeWordbookUC{wordbooks: make(map[string]*entity.Wordbook)}
}

func (f *fakeWordbookUC) ListWordbooks(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	var out []entity.Wordbook
	for _, wb := range f.wordbooks {
		if wb.UserID == userID && !wb.Trashed {
			out = append(out, *wb)
		}
	}
	return out, nil
}

func (f *fakeWordbookUC) CreateWordbook(ctx context.Context, userID, name string) (*entity.Wordbook, error) {
	name = entity.NormalizeWordbookName(name)
	if name == "" {
		return nil, entity.ErrInvalidWordbookName
	}
	wb := &entity.Wordbook{ID: "wb-1", UserID: userID, Name: name}
	f.wordbooks[wb.ID] = wb
	return wb, nil
}

func (f *fakeWordbookUC) RenameWordbook(ctx context.Context, userID, id, name string) error {
	wb, ok := f.wordbooks[id]
	if !ok {
		return entity.ErrWordbookNotFound
	}
	wb.Name = name
	return nil
}

func (f *fakeWordbookUC) TrashWordbook(ctx context.Context, userID, id string) error {
	wb, ok := f.wordbooks[id]
	if !ok {
		return entity.ErrWordbookNotFound
	}
	wb.Trashed = true
	f.trashed = append(f.trashed, id)
	return nil
}

func (f *fakeWordbookUC) ListTrashedWordbooks(ctx context.Context, userID string) ([]entity.Wordbook, error) {
	var out []entity.Wordbook
	for _, wb := range f.wordbooks {
		if wb.UserID == userID && wb.Trashed {
			out = append(out, *wb)
		}
	}
	return out, nil
}

func (f *fakeWordbookUC) EmptyTrash(ctx context.Context, userID string) error {
	for id, wb := range f.wordbooks {
		if wb.Trashed {
			delete(f.wordbooks, id)
		}
	}
	return nil
}

func (f *fakeWordbookUC) DeleteWordbook(ctx context.Context, userID, id string) error {
	delete(f.wordbooks, id)
	return nil
}

func (f *fakeWordbookUC) GetWordbook(ctx context.Context, userID, id string) (*entity.Wordbook, error) {
	wb, ok := f.wordbooks[id]
	if !ok {
		return nil, entity.ErrWordbookNotFound
	}
	return wb, nil
}

type fakeWordUC struct {
	words    map[string]entity.Word
	imported []entity.Word
	reset    []string
	deleted  []string
}

func newFakeWordUC() *fakeWordUC {
	return &fakeWordUC{words: make(map[string]entity.Word)}
}

func (f *fakeWordUC) ListWords(ctx context.Context, userID, wordbookID string) ([]entity.Word, error) {
	var out []entity.Word
	for _, w := range f.words {
		if w.WordbookID == wordbookID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWordUC) CreateWord(ctx context.Context, userID, wordbookID string, word *entity.Word) (*entity.Word, error) {
	text := entity.NormalizeWordText(word.Text)
	if text == "" {
		return nil, entity.ErrInvalidWordText
	}
	created := *word
	created.ID = "w-1"
	created.Text = text
	created.WordbookID = wordbookID
	f.words[created.ID] = created
	return &created, nil
}

func (f *fakeWordUC) UpdateWord(ctx context.Context, userID, wordbookID, id string, patch entity.WordPatch) error {
	w, ok := f.words[id]
	if !ok {
		return entity.ErrWordNotFound
	}
	patch.Apply(&w)
	f.words[id] = w
	return nil
}

func (f *fakeWordUC) DeleteWord(ctx context.Context, userID, wordbookID, id string) error {
	delete(f.words, id)
	return nil
}

func (f *fakeWordUC) ImportWords(ctx context.Context, userID, wordbookID string, words []entity.Word) ([]entity.Word, error) {
	f.imported = words
	return words, nil
}

func (f *fakeWordUC) ResetProgress(ctx context.Context, userID, wordbookID string, ids []string) error {
	f.reset = ids
	return nil
}

func (f *fakeWordUC) DeleteWords(ctx context.Context, userID, wordbookID string, ids []string) error {
	f.deleted = ids
	return nil
}

type fakePosTagUC struct {
	tags map[string]entity.PosTag
}

func newFakePosTagUC() *fakePosTagUC {
	return &fakePosTagUC{tags: make(map[string]entity.PosTag)}
}

func (f *fakePosTagUC) ListPosTags(ctx context.Context, userID string) ([]entity.PosTag, error) {
	var out []entity.PosTag
	for _, tag := range f.tags {
		out = append(out, tag)
	}
	return out, nil
}

func (f *fakePosTagUC) CreatePosTag(ctx context.Context, userID string, tag *entity.PosTag) (*entity.PosTag, error) {
	name := entity.NormalizePosTagName(tag.Name)
	if name == "" {
		return nil, entity.ErrInvalidPosTagName
	}
	created := *tag
	created.ID = "tag-1"
	created.Name = name
	f.tags[created.ID] = created
	return &created, nil
}

func (f *fakePosTagUC) UpdatePosTag(ctx context.Context, userID, id string, patch entity.PosTagPatch) error {
	tag, ok := f.tags[id]
	if !ok {
		return entity.ErrPosTagNotFound
	}
	patch.Apply(&tag)
	f.tags[id] = tag
	return nil
}

func (f *fakePosTagUC) DeletePosTag(ctx context.Context, userID, id string) error {
	if _, ok := f.tags[id]; !ok {
		return entity.ErrPosTagNotFound
	}
	delete(f.tags, id)
	return nil
}

func newTestServer(wordbooks *fakeWordbookUC, words *fakeWordUC, tags *fakePosTagUC) *echo.Echo {
	e := echo.New()
	router := NewRouter(
		NewWordbookHandler(wordbooks),
		NewWordHandler(words),
		NewPosTagHandler(tags),
	)
	router.Register(e)
	return e
}

func doRequest(e *echo.Echo, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMissingUserHeader(t *testing.T) {
	e := newTestServer(newFakeWordbookUC(), newFakeWordUC(), newFakePosTagUC())
	rec := doRequest(e, http.MethodGet, "/api/v1/wordbooks", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateAndListWordbooks(t *testing.T) {
	e := newTestServer(newFakeWordbookUC(), newFakeWordUC(), newFakePosTagUC())

	rec := doRequest(e, http.MethodPost, "/api/v1/wordbooks", "u1", `{"name":"Travel"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created entity.Wordbook
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Name != "Travel" || created.ID == "" {
		t.Fatalf("created = %+v", created)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/wordbooks", "u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []entity.Wordbook
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed = %+v", listed)
	}
}

func TestListWordbooksEmptyIsArray(t *testing.T) {
	e := newTestServer(newFakeWordbookUC(), newFakeWordUC(), newFakePosTagUC())
	rec := doRequest(e, http.MethodGet, "/api/v1/wordbooks", "u1", "")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("empty list body = %q", body)
	}
}

func TestCreateWordbookInvalidName(t *testing.T) {
	e := newTestServer(newFakeWordbookUC(), newFakeWordUC(), newFakePosTagUC())
	rec := doRequest(e, http.MethodPost, "/api/v1/wordbooks", "u1", `{"name":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetWordbookNotFound(t *testing.T) {
	e := newTestServer(newFakeWordbookUC(), newFakeWordUC(), newFakePosTagUC())
	rec := doRequest(e, http.MethodGet, "/api/v1/wordbooks/missing", "u1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTrashLifecycleRoutes(t *testing.T) {
	wordbooks := newFakeWordbookUC()
	e := newTestServer(wordbooks, newFakeWordUC(), newFakePosTagUC())

	doRequest(e, http.MethodPost, "/api/v1/wordbooks", "u1", `{"name":"A"}`)

	rec := doRequest(e, http.MethodPost, "/api/v1/wordbooks/wb-1/trash", "u1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("trash status = %d", rec.Code)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/wordbooks/trash", "u1", "")
	var trashed []entity.Wordbook
	if err := json.Unmarshal(rec.Body.Bytes(), &trashed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(trashed) != 1 || trashed[0].ID != "wb-1" {
		t.Fatalf("trashed = %+v", trashed)
	}

	rec = doRequest(e, http.MethodDelete, "/api/v1/wordbooks/trash", "u1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("empty trash status = %d", rec.Code)
	}
	if len(wordbooks.wordbooks) != 0 {
		t.Fatalf("trash not emptied: %+v", wordbooks.wordbooks)
	}
}

func TestWordRoutes(t *testing.T) {
	words := newFakeWordUC()
	e := newTestServer(newFakeWordbookUC(), words, newFakePosTagUC())

	rec := doRequest(e, http.MethodPost, "/api/v1/wordbooks/b1/words", "u1",
		`{"text":"apple","posIds":["t1"],"related":{"synonym":"fruit"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created entity.Word
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Text != "apple" || created.Related == nil || created.Related.Synonym != "fruit" {
		t.Fatalf("created = %+v", created)
	}

	rec = doRequest(e, http.MethodPatch, "/api/v1/wordbooks/b1/words/w-1", "u1", `{"favorite":true}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d", rec.Code)
	}
	if !words.words["w-1"].Favorite {
		t.Fatalf("patch not applied: %+v", words.words["w-1"])
	}

	rec = doRequest(e, http.MethodPost, "/api/v1/wordbooks/b1/words/import", "u1",
		`{"words":[{"text":"one"},{"text":"two"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import status = %d", rec.Code)
	}
	if len(words.imported) != 2 {
		t.Fatalf("imported = %+v", words.imported)
	}

	rec = doRequest(e, http.MethodPost, "/api/v1/wordbooks/b1/words/reset-progress", "u1", `{"ids":["w-1"]}`)
	if rec.Code != http.StatusNoContent || len(words.reset) != 1 {
		t.Fatalf("reset status = %d, ids %v", rec.Code, words.reset)
	}

	rec = doRequest(e, http.MethodPost, "/api/v1/wordbooks/b1/words/bulk-delete", "u1", `{"ids":["w-1"]}`)
	if rec.Code != http.StatusNoContent || len(words.deleted) != 1 {
		t.Fatalf("bulk delete status = %d, ids %v", rec.Code, words.deleted)
	}

	rec = doRequest(e, http.MethodPatch, "/api/v1/wordbooks/b1/words/ghost", "u1", `{"favorite":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("patch missing word status = %d", rec.Code)
	}
}

func TestPosTagRoutes(t *testing.T) {
	tags := newFakePosTagUC()
	e := newTestServer(newFakeWordbookUC(), newFakeWordUC(), tags)

	rec := doRequest(e, http.MethodPost, "/api/v1/tags", "u1", `{"name":"noun","color":"#123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = doRequest(e, http.MethodPatch, "/api/v1/tags/tag-1", "u1", `{"color":"#456"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d", rec.Code)
	}
	if tags.tags["tag-1"].Color != "#456" {
		t.Fatalf("patch not applied: %+v", tags.tags["tag-1"])
	}

	rec = doRequest(e, http.MethodDelete, "/api/v1/tags/tag-1", "u1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(e, http.MethodDelete, "/api/v1/tags/tag-1", "u1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing status = %d", rec.Code)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/tags", "u1", "")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("empty tags body = %q", body)
	}
}
