package docstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents as JSON blobs in a process-local map. It is
// the development and test backend.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(ctx context.Context, path string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, _, err := SplitPath(path); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[path]
	if !ok {
		return nil, nil
	}
	return decodeDoc(raw)
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string) ([]Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectLocked(collection)
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Doc, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	result := docs[:0:0]
	for _, doc := range docs {
		if matches(doc.Data, filters) {
			result = append(result, doc)
		}
	}
	return result, nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := validateCollection(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.Set(ctx, collection+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := SplitPath(path); err != nil {
		return err
	}
	raw, err := encodeDoc(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = raw
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := SplitPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(path, fields)
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := SplitPath(path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

func (s *MemoryStore) Batch() WriteBatch {
	return &memoryBatch{store: s}
}

func (s *MemoryStore) collectLocked(collection string) ([]Doc, error) {
	prefix := collection + "/"
	var docs []Doc
	for path, raw := range s.docs {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		id := path[len(prefix):]
		if strings.Contains(id, "/") {
			continue
		}
		data, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Doc{ID: id, Data: data})
	}
	return docs, nil
}

func (s *MemoryStore) updateLocked(path string, fields map[string]any) error {
	raw, ok := s.docs[path]
	if !ok {
		return ErrNoDocument
	}
	doc, err := decodeDoc(raw)
	if err != nil {
		return err
	}
	merged, err := encodeDoc(mergeFields(doc, normalizeFields(fields)))
	if err != nil {
		return err
	}
	s.docs[path] = merged
	return nil
}

func normalizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = normalizeValue(value)
	}
	return out
}

type memoryBatch struct {
	store *MemoryStore
	ops   []batchOp
}

func (b *memoryBatch) Set(path string, data map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opSet, path: path, fields: data})
}

func (b *memoryBatch) Update(path string, fields map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opUpdate, path: path, fields: fields})
}

func (b *memoryBatch) Delete(path string) {
	b.ops = append(b.ops, batchOp{kind: opDelete, path: path})
}

// Commit validates every mutation before touching the map, so a batch is
// applied entirely or not at all.
func (b *memoryBatch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, op := range b.ops {
		if _, _, err := SplitPath(op.path); err != nil {
			return err
		}
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	// Stage against a view that includes earlier ops of the same batch.
	staged := make(map[string][]byte, len(b.ops))
	deleted := make(map[string]bool, len(b.ops))
	lookup := func(path string) ([]byte, bool) {
		if deleted[path] {
			return nil, false
		}
		if raw, ok := staged[path]; ok {
			return raw, true
		}
		raw, ok := b.store.docs[path]
		return raw, ok
	}

	for _, op := range b.ops {
		switch op.kind {
		case opSet:
			raw, err := encodeDoc(op.fields)
			if err != nil {
				return err
			}
			staged[op.path] = raw
			delete(deleted, op.path)
		case opUpdate:
			raw, ok := lookup(op.path)
			if !ok {
				return ErrNoDocument
			}
			doc, err := decodeDoc(raw)
			if err != nil {
				return err
			}
			merged, err := encodeDoc(mergeFields(doc, normalizeFields(op.fields)))
			if err != nil {
				return err
			}
			staged[op.path] = merged
		case opDelete:
			delete(staged, op.path)
			deleted[op.path] = true
		}
	}

	for path := range deleted {
		delete(b.store.docs, path)
	}
	for path, raw := range staged {
		b.store.docs[path] = raw
	}
	return nil
}
