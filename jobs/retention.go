// Package jobs holds the backend's scheduled maintenance work.
package jobs

import (
	"log"
	"os"
	"time"

	"github.com/Mohamed-Adam-Jemal/Portfolio/stores"
	"github.com/robfig/cron/v3"
)

// RetentionJob prunes contact messages older than the retention window.
type RetentionJob struct {
	Store  stores.ContactStore
	Days   int
	Logger *log.Logger

	cron *cron.Cron
}

// NewRetentionJob creates a retention job keeping days worth of messages.
func NewRetentionJob(store stores.ContactStore, days int) *RetentionJob {
	return &RetentionJob{
		Store:  store,
		Days:   days,
		Logger: log.New(os.Stdout, "[RETENTION] ", log.LstdFlags),
	}
}

// Start schedules a daily prune and runs one immediately to catch up after
// downtime.
func (j *RetentionJob) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc("@daily", j.run); err != nil {
		return err
	}
	j.cron.Start()
	go j.run()
	return nil
}

// Stop halts the schedule; a prune already running finishes.
func (j *RetentionJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

func (j *RetentionJob) run() {
	cutoff := time.Now().AddDate(0, 0, -j.Days)
	removed, err := j.Store.PruneOlderThan(cutoff)
	if err != nil {
		j.Logger.Printf("Prune failed: %v", err)
		return
	}
	if removed > 0 {
		j.Logger.Printf("Pruned %d contact messages older than %s", removed, cutoff.Format("2006-01-02"))
	}
}
