package prefs

import (
	"context"
	"fmt"

	"github.com/randomtoy/klondike-go/internal/ports"
)

// Options selects and configures a preference backend.
type Options struct {
	Backend string // memory, file or redis
	Path    string
	Redis   RedisOptions
}

// Open builds the configured store. The returned close func is never nil.
func Open(ctx context.Context, opts Options) (ports.Preferences, func() error, error) {
	noop := func() error { return nil }
	switch opts.Backend {
	case "memory":
		return NewMemoryStore(), noop, nil
	case "file":
		return NewFileStore(opts.Path), noop, nil
	case "redis":
		s := NewRedisStore(opts.Redis)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, fmt.Errorf("connect redis %s: %w", opts.Redis.Addr, err)
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown preference backend %q", opts.Backend)
	}
}
