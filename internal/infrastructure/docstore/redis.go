package docstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisDocPrefix = "doc:"
	redisColPrefix = "col:"
)

// RedisStore keeps documents as JSON strings under doc:<path> keys, with a
// per-collection membership set under col:<collection>. Write batches are
// committed through a transactional pipeline; updates read the current
// document before the pipeline is queued, so concurrent writers from other
// processes follow last-writer-wins, matching the hosted-store contract.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, path string) (map[string]any, error) {
	if _, _, err := SplitPath(path); err != nil {
		return nil, err
	}
	raw, err := s.client.Get(ctx, redisDocPrefix+path).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc([]byte(raw))
}

func (s *RedisStore) GetAll(ctx context.Context, collection string) ([]Doc, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	ids, err := s.client.SMembers(ctx, redisColPrefix+collection).Result()
	if err != nil {
		return nil, err
	}
	var docs []Doc
	for _, id := range ids {
		raw, err := s.client.Get(ctx, redisDocPrefix+collection+"/"+id).Result()
		if err == redis.Nil {
			// Membership set can briefly lag the document keys.
			continue
		}
		if err != nil {
			return nil, err
		}
		data, err := decodeDoc([]byte(raw))
		if err != nil {
			return nil, err
		}
		docs = append(docs, Doc{ID: id, Data: data})
	}
	return docs, nil
}

func (s *RedisStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Doc, error) {
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

func (s *RedisStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := validateCollection(collection); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.Set(ctx, collection+"/"+id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Set(ctx context.Context, path string, data map[string]any) error {
	collection, id, err := SplitPath(path)
	if err != nil {
		return err
	}
	raw, err := encodeDoc(data)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisDocPrefix+path, string(raw), 0)
		pipe.SAdd(ctx, redisColPrefix+collection, id)
		return nil
	})
	return err
}

func (s *RedisStore) Update(ctx context.Context, path string, fields map[string]any) error {
	doc, err := s.Get(ctx, path)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNoDocument
	}
	merged, err := encodeDoc(mergeFields(doc, normalizeFields(fields)))
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisDocPrefix+path, string(merged), 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, path string) error {
	collection, id, err := SplitPath(path)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisDocPrefix+path)
		pipe.SRem(ctx, redisColPrefix+collection, id)
		return nil
	})
	return err
}

func (s *RedisStore) Batch() WriteBatch {
	return &redisBatch{store: s}
}

type redisBatch struct {
	store *RedisStore
	ops   []batchOp
}

func (b *redisBatch) Set(path string, data map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opSet, path: path, fields: data})
}

func (b *redisBatch) Update(path string, fields map[string]any) {
	b.ops = append(b.ops, batchOp{kind: opUpdate, path: path, fields: fields})
}

func (b *redisBatch) Delete(path string) {
	b.ops = append(b.ops, batchOp{kind: opDelete, path: path})
}

func (b *redisBatch) Commit(ctx context.Context) error {
	// Resolve updates up front so a missing document fails the batch
	// before anything is written.
	payloads := make([]string, len(b.ops))
	for i, op := range b.ops {
		switch op.kind {
		case opSet:
			raw, err := encodeDoc(op.fields)
			if err != nil {
				return err
			}
			payloads[i] = string(raw)
		case opUpdate:
			doc, err := b.store.Get(ctx, op.path)
			if err != nil {
				return err
			}
			if doc == nil {
				return ErrNoDocument
			}
			raw, err := encodeDoc(mergeFields(doc, normalizeFields(op.fields)))
			if err != nil {
				return err
			}
			payloads[i] = string(raw)
		case opDelete:
			if _, _, err := SplitPath(op.path); err != nil {
				return err
			}
		}
	}

	_, err := b.store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, op := range b.ops {
			collection, id, err := SplitPath(op.path)
			if err != nil {
				return err
			}
			switch op.kind {
			case opSet, opUpdate:
				pipe.Set(ctx, redisDocPrefix+op.path, payloads[i], 0)
				pipe.SAdd(ctx, redisColPrefix+collection, id)
			case opDelete:
				pipe.Del(ctx, redisDocPrefix+op.path)
				pipe.SRem(ctx, redisColPrefix+collection, id)
			}
		}
		return nil
	})
	return err
}
