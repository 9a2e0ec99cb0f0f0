package database

import (
	"context"
	"time"

	"github.com/Aidin1998/trivia/pkg/metrics"
	"gorm.io/gorm"
)

// CollectStats samples pool statistics into the DB gauges every interval
// until ctx is done.
func CollectStats(ctx context.Context, db *gorm.DB, name string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if sqlDB, err := db.DB(); err == nil {
			metrics.ObserveDBStats(name, sqlDB.Stats())
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
