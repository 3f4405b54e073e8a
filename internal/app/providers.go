package app

import (
	"github.com/eslsoft/wordvault/internal/cache"
	"github.com/eslsoft/wordvault/internal/infrastructure/config"
	"github.com/eslsoft/wordvault/internal/infrastructure/docstore"
)

// ProvideStore opens the configured document store backend.
func ProvideStore(cfg *config.Config) (docstore.Store, func(), error) {
	return docstore.New(docstore.Options{
		Driver:   cfg.Store.Driver,
		Path:     cfg.Store.Path,
		RedisURL: cfg.Store.RedisURL,
	})
}

// ProvideCachePolicy derives the cache expiry policy from config. A zero
// TTL keeps entries until a write path replaces or evicts them.
func ProvideCachePolicy(cfg *config.Config) cache.Policy {
	if cfg.Cache.TTL > 0 {
		return cache.TTL(cfg.Cache.TTL)
	}
	return cache.NeverExpire()
}
