package usecase

import (
	"github.com/eslsoft/wordvault/internal/cache"
	"github.com/eslsoft/wordvault/internal/entity"
)

// wordsKey identifies the cached word list of one wordbook.
type wordsKey struct {
	UserID     string
	WordbookID string
}

// Caches bundles the read caches shared by the usecases: word lists keyed
// by (user, wordbook) and tag lists keyed by user. One Caches instance is
// constructed per process and injected into every usecase so tests can
// control and inspect cache state.
type Caches struct {
	Words *cache.Map[wordsKey, []entity.Word]
	Tags  *cache.Map[string, []entity.PosTag]
}

// NewCaches builds the cache set with the given expiry policy.
func NewCaches(policy cache.Policy) *Caches {
	return &Caches{
		Words: cache.New[wordsKey, []entity.Word](policy),
		Tags:  cache.New[string, []entity.PosTag](policy),
	}
}
