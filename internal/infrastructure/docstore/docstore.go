// Package docstore provides a path-addressed, schemaless document store.
//
// Documents live under slash-separated paths whose segments alternate
// between collection names and document identifiers, e.g.
// users/{uid}/wordbooks/{id}/words/{id}. All backends normalize document
// values through JSON, so a field written as int32 reads back as float64
// regardless of the backend in use.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"errors"
)

// ErrNoDocument is returned by Update (and batched updates) when the
// addressed document does not exist. Plain Get reports absence as a nil
// document instead.
var ErrNoDocument = errors.New("docstore: no such document")

// Doc pairs a document identifier with its decoded fields.
type Doc struct {
	ID   string
	Data map[string]any
}

// Op is a query filter operator.
type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
)

// Filter restricts a Query to documents whose field matches the value
// under the given operator.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Where builds a query filter.
func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// WriteBatch accumulates mutations that Commit applies as a single atomic
// unit. A failed update (missing document) fails the whole batch.
type WriteBatch interface {
	Set(path string, data map[string]any)
	Update(path string, fields map[string]any)
	Delete(path string)
	Commit(ctx context.Context) error
}

// Store is the document store client interface all backends implement.
type Store interface {
	// Get returns a single document's fields, or nil if absent.
	Get(ctx context.Context, path string) (map[string]any, error)

	// GetAll returns every document directly under a collection.
	GetAll(ctx context.Context, collection string) ([]Doc, error)

	// Query returns the collection's documents matching every filter.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Doc, error)

	// Add inserts a document with a store-assigned identifier.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)

	// Set inserts or fully replaces the document at path.
	Set(ctx context.Context, path string, data map[string]any) error

	// Update partially merges fields into an existing document.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Delete removes the document at path. Deleting an absent document
	// is not an error.
	Delete(ctx context.Context, path string) error

	// Batch starts an atomic write batch.
	Batch() WriteBatch

	Close() error
}

// SplitPath splits a document path into its parent collection and id.
func SplitPath(path string) (collection, id string, err error) {
	segs := strings.Split(path, "/")
	if len(segs) < 2 || len(segs)%2 != 0 {
		return "", "", fmt.Errorf("docstore: %q is not a document path", path)
	}
	for _, seg := range segs {
		if seg == "" {
			return "", "", fmt.Errorf("docstore: %q contains an empty segment", path)
		}
	}
	return strings.Join(segs[:len(segs)-1], "/"), segs[len(segs)-1], nil
}

func validateCollection(path string) error {
	segs := strings.Split(path, "/")
	if len(segs)%2 != 1 {
		return fmt.Errorf("docstore: %q is not a collection path", path)
	}
	for _, seg := range segs {
		if seg == "" {
			return fmt.Errorf("docstore: %q contains an empty segment", path)
		}
	}
	return nil
}

func encodeDoc(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	return json.Marshal(data)
}

func decodeDoc(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("docstore: corrupt document: %w", err)
	}
	return doc, nil
}

// normalizeValue passes a value through JSON so that filter comparisons
// behave identically across backends.
func normalizeValue(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		got, ok := data[f.Field]
		want := normalizeValue(f.Value)
		switch f.Op {
		case OpEqual:
			if !ok || !reflect.DeepEqual(got, want) {
				return false
			}
		case OpArrayContains:
			arr, isArr := got.([]any)
			if !ok || !isArr {
				return false
			}
			found := false
			for _, item := range arr {
				if reflect.DeepEqual(item, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func mergeFields(doc, fields map[string]any) map[string]any {
	for key, value := range fields {
		doc[key] = value
	}
	return doc
}

type batchOpKind int

const (
	opSet batchOpKind = iota
	opUpdate
	opDelete
)

type batchOp struct {
	kind   batchOpKind
	path   string
	fields map[string]any
}
