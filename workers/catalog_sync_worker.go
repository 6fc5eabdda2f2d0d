// workers/catalog_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"learn-track-system/services"
)

// CatalogSyncWorker periodically refreshes the last-known playlist video
// counts so completion percentages and achievements keep working while the
// catalog provider is down.
type CatalogSyncWorker struct {
	subjects *services.SubjectService
	interval time.Duration
}

func NewCatalogSyncWorker(subjects *services.SubjectService) *CatalogSyncWorker {
	return &CatalogSyncWorker{
		subjects: subjects,
		interval: 1 * time.Hour,
	}
}

func (w *CatalogSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Catalog Sync Worker (playlist counts → playlist_count_caches)…")
	go w.run(ctx)
}

func (w *CatalogSyncWorker) run(ctx context.Context) {
	// Initial sync so fresh deployments get counts without waiting a tick.
	if err := w.subjects.RefreshVideoCounts(ctx); err != nil {
		log.Printf("⚠️ Initial catalog sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.subjects.RefreshVideoCounts(ctx); err != nil {
				log.Printf("❌ Catalog sync failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Catalog Sync Worker stopped")
			return
		}
	}
}
