// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func (s *ProgressService) StartMaintenanceScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Daily: drop activity markers older than 400 days. Streak derivation
	// never looks that far back, and the table stays bounded.
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().AddDate(0, 0, -400)
			if err := s.Store.PruneActivity(cutoff); err != nil {
				log.Printf("[Scheduler] Activity prune failed: %v", err)
			}
		}),
	)
}
