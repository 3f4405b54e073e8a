package usecase

import (
	"context"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/eslsoft/wordvault/internal/entity"
	"github.com/eslsoft/wordvault/internal/repository"
)

// tagCleanupConcurrency bounds the per-wordbook fan-out of DeletePosTag.
const tagCleanupConcurrency = 8

// PosTagUsecase encapsulates business logic for user-defined
// part-of-speech tags, including the cross-wordbook reference cleanup on
// delete.
type PosTagUsecase interface {
	ListPosTags(ctx context.Context, userID string) ([]entity.PosTag, error)
	CreatePosTag(ctx context.Context, userID string, tag *entity.PosTag) (*entity.PosTag, error)
	UpdatePosTag(ctx context.Context, userID, id string, patch entity.PosTagPatch) error
	DeletePosTag(ctx context.Context, userID, id string) error
}

// NewPosTagUsecase wires the repositories and the shared caches.
func NewPosTagUsecase(
	tags repository.PosTagRepository,
	wordbooks repository.WordbookRepository,
	words repository.WordRepository,
	caches *Caches,
) PosTagUsecase {
	return &posTagUsecase{
		tags:      tags,
		wordbooks: wordbooks,
		words:     words,
		caches:    caches,
	}
}

type posTagUsecase struct {
	tags      repository.PosTagRepository
	wordbooks repository.WordbookRepository
	words     repository.WordRepository
	caches    *Caches
}

func (u *posTagUsecase) ListPosTags(ctx context.Context, userID string) ([]entity.PosTag, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if tags, ok := u.caches.Tags.Get(userID); ok {
		return slices.Clone(tags), nil
	}
	tags, err := u.tags.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.caches.Tags.Put(userID, tags)
	return slices.Clone(tags), nil
}

func (u *posTagUsecase) CreatePosTag(ctx context.Context, userID string, tag *entity.PosTag) (*entity.PosTag, error) {
	if userID == "" {
		return nil, entity.ErrInvalidUserID
	}
	if tag == nil {
		return nil, entity.ErrInvalidPosTagName
	}
	name := entity.NormalizePosTagName(tag.Name)
	if name == "" {
		return nil, entity.ErrInvalidPosTagName
	}

	draft := *tag
	draft.Name = name
	draft.UserID = userID

	created, err := u.tags.Create(ctx, &draft)
	if err != nil {
		return nil, err
	}
	u.caches.Tags.Mutate(userID, func(tags []entity.PosTag) []entity.PosTag {
		return append(slices.Clone(tags), *created)
	})
	return created, nil
}

func (u *posTagUsecase) UpdatePosTag(ctx context.Context, userID, id string, patch entity.PosTagPatch) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if id == "" {
		return entity.ErrPosTagNotFound
	}
	if name := patch.Name; name != nil {
		trimmed := entity.NormalizePosTagName(*name)
		if trimmed == "" {
			return entity.ErrInvalidPosTagName
		}
		patch.Name = &trimmed
	}
	if err := u.tags.Update(ctx, userID, id, patch); err != nil {
		return err
	}
	u.caches.Tags.Mutate(userID, func(tags []entity.PosTag) []entity.PosTag {
		out := slices.Clone(tags)
		for i := range out {
			if out[i].ID == id {
				patch.Apply(&out[i])
			}
		}
		return out
	})
	return nil
}

// DeletePosTag runs in two phases. Phase one fans out across every
// wordbook the user owns (trashed included), rewriting the
// part-of-speech list of each word that references the tag; each
// wordbook's rewrites commit as one batch and the wordbooks are processed
// concurrently. Phase two deletes the tag document. The two phases are
// not a single transaction: a failure between them leaves orphaned
// references possible, never a dangling tag on a clean run.
func (u *posTagUsecase) DeletePosTag(ctx context.Context, userID, id string) error {
	if userID == "" {
		return entity.ErrInvalidUserID
	}
	if id == "" {
		return entity.ErrPosTagNotFound
	}

	active, err := u.wordbooks.List(ctx, userID)
	if err != nil {
		return err
	}
	trashed, err := u.wordbooks.ListTrashed(ctx, userID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tagCleanupConcurrency)
	for _, wordbook := range append(active, trashed...) {
		wordbook := wordbook
		g.Go(func() error {
			return u.scrubWordbook(gctx, userID, wordbook.ID, id)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := u.tags.Delete(ctx, userID, id); err != nil {
		return err
	}
	u.caches.Tags.Mutate(userID, func(tags []entity.PosTag) []entity.PosTag {
		return lo.Reject(tags, func(tag entity.PosTag, _ int) bool { return tag.ID == id })
	})
	return nil
}

func (u *posTagUsecase) scrubWordbook(ctx context.Context, userID, wordbookID, tagID string) error {
	matched, err := u.words.ListByPosTag(ctx, userID, wordbookID, tagID)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return nil
	}

	replacement := make(map[string][]string, len(matched))
	for _, word := range matched {
		replacement[word.ID] = lo.Without(word.PosIDs, tagID)
	}
	if err := u.words.ReplacePosIDs(ctx, userID, wordbookID, replacement); err != nil {
		return err
	}

	u.caches.Words.Mutate(wordsKey{UserID: userID, WordbookID: wordbookID}, func(words []entity.Word) []entity.Word {
		out := slices.Clone(words)
		for i := range out {
			if lo.Contains(out[i].PosIDs, tagID) {
				out[i].PosIDs = lo.Without(out[i].PosIDs, tagID)
			}
		}
		return out
	})
	return nil
}
