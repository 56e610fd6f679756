package cmd

import (
	"fmt"

	"ck-services/core/config"
	"ck-services/core/feed"
	"ck-services/core/storage"
)

// newFeedSource builds the configured feed source. Shared by the start and
// sync commands.
func newFeedSource(cfg *config.Config) (feed.Source, error) {
	if !cfg.Feed.IsValidSource() {
		return nil, fmt.Errorf("invalid feed source: %s", cfg.Feed.Source)
	}

	switch cfg.Feed.Source {
	case feed.SourceBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return feed.NewBucketSource(client, cfg.Storage.Bucket, cfg.Feed), nil
	default:
		return feed.NewSheetSource(cfg.Feed), nil
	}
}
