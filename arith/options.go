package arith

import (
	"fmt"
	"io"
)

type config struct {
	rand        io.Reader
	maxRetries  int
	searchBound uint64
}

// Option configures the randomized and search-based helpers of this package.
type Option func(*config) error

func newConfig(opts ...Option) (config, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// WithRand sets the randomness source. Defaults to crypto/rand.
func WithRand(r io.Reader) Option {
	return func(cfg *config) error {
		if r == nil {
			return fmt.Errorf("rand source must not be nil")
		}
		cfg.rand = r
		return nil
	}
}

// WithMaxRetries overrides the retry budget of randomized searches.
func WithMaxRetries(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("retry budget must be positive, got %d", n)
		}
		cfg.maxRetries = n
		return nil
	}
}

// WithSearchBound overrides the candidate budget of deterministic scans such
// as PrimitiveRoot.
func WithSearchBound(n uint64) Option {
	return func(cfg *config) error {
		if n == 0 {
			return fmt.Errorf("search bound must be positive")
		}
		cfg.searchBound = n
		return nil
	}
}
