// Package backup exports and imports one user's vocabulary data as an
// NDJSON stream: a header record followed by one record per tag, wordbook
// and word.
package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/repository"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1

	// maxLineBytes bounds a single NDJSON record.
	maxLineBytes = 1 << 20
)

type ProgressReporter interface {
	StartSection(section string, total int)
	Increment(section string, delta int)
	FinishSection(section string)
}

type noopProgress struct{}

func (noopProgress) StartSection(string, int) {}
func (noopProgress) Increment(string, int)    {}
func (noopProgress) FinishSection(string)     {}

// Service streams a user's wordbooks, words and tags out of and back into
// the repositories.
type Service struct {
	wordbooks repository.WordbookRepository
	words     repository.WordRepository
	tags      repository.PosTagRepository
	batchSize int
	clock     func() time.Time
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewService constructs a backup service over the given repositories.
func NewService(
	wordbooks repository.WordbookRepository,
	words repository.WordRepository,
	tags repository.PosTagRepository,
	opts ...Option,
) *Service {
	svc := &Service{
		wordbooks: wordbooks,
		words:     words,
		tags:      tags,
		batchSize: defaultBatchSize,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	reporter ProgressReporter
}

// WithProgressReporter registers a reporter that receives progress
// callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type record struct {
	Type       string           `json:"type"`
	Version    int              `json:"version,omitempty"`
	ExportedAt *time.Time       `json:"exportedAt,omitempty"`
	UserID     string           `json:"userId,omitempty"`
	Wordbook   *entity.Wordbook `json:"wordbook,omitempty"`
	Word       *entity.Word     `json:"word,omitempty"`
	PosTag     *entity.PosTag   `json:"posTag,omitempty"`
}

const (
	recordHeader   = "header"
	recordWordbook = "wordbook"
	recordWord     = "word"
	recordPosTag   = "posTag"
)

// Export writes the user's complete vocabulary data to w. Trashed
// wordbooks are included so a restore preserves the trash state.
func (s *Service) Export(ctx context.Context, userID string, w io.Writer, opts ...ExportOption) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	cfg := exportConfig{reporter: noopProgress{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	enc := json.NewEncoder(w)
	exportedAt := s.clock()
	if err := enc.Encode(record{
		Type:       recordHeader,
		Version:    formatVersion,
		ExportedAt: &exportedAt,
		UserID:     userID,
	}); err != nil {
		return err
	}

	tags, err := s.tags.List(ctx, userID)
	if err != nil {
		return err
	}
	cfg.reporter.StartSection("posTags", len(tags))
	for i := range tags {
		if err := enc.Encode(record{Type: recordPosTag, PosTag: &tags[i]}); err != nil {
			return err
		}
		cfg.reporter.Increment("posTags", 1)
	}
	cfg.reporter.FinishSection("posTags")

	active, err := s.wordbooks.List(ctx, userID)
	if err != nil {
		return err
	}
	trashed, err := s.wordbooks.ListTrashed(ctx, userID)
	if err != nil {
		return err
	}
	wordbooks := append(active, trashed...)
	cfg.reporter.StartSection("wordbooks", len(wordbooks))
	for i := range wordbooks {
		if err := enc.Encode(record{Type: recordWordbook, Wordbook: &wordbooks[i]}); err != nil {
			return err
		}
		words, err := s.words.ListByWordbook(ctx, userID, wordbooks[i].ID)
		if err != nil {
			return err
		}
		for j := range words {
			if err := enc.Encode(record{Type: recordWord, Word: &words[j]}); err != nil {
				return err
			}
		}
		cfg.reporter.Increment("wordbooks", 1)
	}
	cfg.reporter.FinishSection("wordbooks")
	return nil
}

// Import replays an export stream into the given user's account. All
// identifiers are reassigned; tag references inside words are remapped to
// the newly created tags. Records referring to a wordbook missing from
// the stream are rejected.
func (s *Service) Import(ctx context.Context, userID string, r io.Reader) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}

	var (
		tags      []entity.PosTag
		wordbooks []entity.Wordbook
		words     = make(map[string][]entity.Word)
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("backup: line %d: %w", line, err)
		}
		switch rec.Type {
		case recordHeader:
			if rec.Version > formatVersion {
				return fmt.Errorf("backup: unsupported format version %d", rec.Version)
			}
		case recordPosTag:
			if rec.PosTag == nil {
				return fmt.Errorf("backup: line %d: empty posTag record", line)
			}
			tags = append(tags, *rec.PosTag)
		case recordWordbook:
			if rec.Wordbook == nil {
				return fmt.Errorf("backup: line %d: empty wordbook record", line)
			}
			wordbooks = append(wordbooks, *rec.Wordbook)
		case recordWord:
			if rec.Word == nil {
				return fmt.Errorf("backup: line %d: empty word record", line)
			}
			words[rec.Word.WordbookID] = append(words[rec.Word.WordbookID], *rec.Word)
		default:
			return fmt.Errorf("backup: line %d: unknown record type %q", line, rec.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	tagIDs := make(map[string]string, len(tags))
	for i := range tags {
		tag := tags[i]
		oldID := tag.ID
		tag.ID = ""
		tag.UserID = userID
		created, err := s.tags.Create(ctx, &tag)
		if err != nil {
			return err
		}
		tagIDs[oldID] = created.ID
	}

	for i := range wordbooks {
		wordbook := wordbooks[i]
		oldID := wordbook.ID
		wordbook.ID = ""
		wordbook.UserID = userID
		created, err := s.wordbooks.Create(ctx, &wordbook)
		if err != nil {
			return err
		}

		batch := words[oldID]
		for j := range batch {
			batch[j].ID = uuid.NewString()
			batch[j].WordbookID = created.ID
			batch[j].PosIDs = remapPosIDs(batch[j].PosIDs, tagIDs)
		}
		for _, chunk := range lo.Chunk(batch, s.batchSize) {
			if err := s.words.BulkInsert(ctx, userID, created.ID, chunk); err != nil {
				return err
			}
		}
		delete(words, oldID)
	}

	if len(words) > 0 {
		return errors.New("backup: stream contains words without their wordbook")
	}
	return nil
}

// remapPosIDs translates tag references to the freshly created tag ids,
// dropping references to tags absent from the stream.
func remapPosIDs(ids []string, mapping map[string]string) []string {
	return lo.FilterMap(ids, func(id string, _ int) (string, bool) {
		mapped, ok := mapping[id]
		return mapped, ok
	})
}
