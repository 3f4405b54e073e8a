package docstore

import "fmt"

// Options selects and configures a store backend.
type Options struct {
	// Driver is one of "memory", "sqlite" or "redis".
	Driver string
	// Path is the sqlite database file.
	Path string
	// RedisURL is the redis connection URL.
	RedisURL string
}

// New builds the configured backend and returns it together with a cleanup
// function, instrumented for prometheus.
func New(opts Options) (Store, func(), error) {
	var (
		store Store
		err   error
	)
	switch opts.Driver {
	case "", "memory":
		store = NewMemoryStore()
	case "sqlite":
		path := opts.Path
		if path == "" {
			path = "wordvault.db"
		}
		store, err = NewSqliteStore(path)
	case "redis":
		store, err = NewRedisStore(opts.RedisURL)
	default:
		err = fmt.Errorf("docstore: unknown driver %q", opts.Driver)
	}
	if err != nil {
		return nil, nil, err
	}
	instrumented := Instrument(store)
	return instrumented, func() { _ = store.Close() }, nil
}
