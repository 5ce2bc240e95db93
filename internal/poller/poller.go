// Package poller runs the cron-scheduled refresh used by watch mode: the live
// feed covers new messages, the poller covers everything it doesn't (urgency
// re-scoring, summaries for conversations with no new traffic).
package poller

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher fires a task on a cron schedule.
type Refresher struct {
	cron  *cron.Cron
	entry cron.EntryID
}

// New schedules fn with the given cron expression (robfig syntax, "@every 30s"
// style descriptors included).
func New(schedule string, fn func()) (*Refresher, error) {
	c := cron.New()
	id, err := c.AddFunc(schedule, fn)
	if err != nil {
		return nil, err
	}
	return &Refresher{cron: c, entry: id}, nil
}

// Start begins firing. Returns immediately.
func (r *Refresher) Start() {
	r.cron.Start()
	slog.Debug("refresher started", "entry", r.entry)
}

// Stop halts the schedule and waits for a running task to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
