package cmd

import (
	"context"
	"fmt"

	"github.com/quotalens/quotalens/internal/config"
	"github.com/quotalens/quotalens/internal/core/store"
)

// openStore loads config and opens the configured key-value backend.
// Callers own the returned store and must Close it.
func openStore(ctx context.Context) (store.KV, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	kv, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	return kv, cfg, nil
}
