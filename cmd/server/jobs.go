// Package main provides the college chat server entry point.
package main

import (
	"context"
	"time"

	"github.com/collegechat/collegechat-go/internal/logger"
	"github.com/collegechat/collegechat-go/internal/storage"
)

// pruneChatLogs deletes chat logs older than the retention window, once
// at startup and then hourly until the context is canceled.
func pruneChatLogs(ctx context.Context, db *storage.DB, retention time.Duration, log *logger.Logger) {
	prune := func() {
		cutoff := time.Now().Add(-retention)
		n, err := db.PruneBefore(cutoff)
		if err != nil {
			log.WithError(err).Error("Failed to prune chat logs")
			return
		}
		if n > 0 {
			log.WithField("pruned", n).
				WithField("cutoff", cutoff.Format(time.RFC3339)).
				Info("Pruned expired chat logs")
		}
	}

	prune()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
