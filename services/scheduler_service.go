package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PleasantH/NutriPal-Chatbot/models"
)

// Dispatcher is the outbound mail transport. Failures are logged, never
// retried and never queued.
type Dispatcher interface {
	Send(to, subject, body string) error
}

// SummaryJob wakes once per day at a fixed local wall-clock time and
// mails every owner their summary for the day. Owners with nothing
// logged today are skipped entirely.
type SummaryJob struct {
	store  *DiaryStore
	mailer Dispatcher
	at     string // "HH:MM"

	stop chan struct{}
	now  func() time.Time
}

func NewSummaryJob(store *DiaryStore, mailer Dispatcher, at string) *SummaryJob {
	return &SummaryJob{
		store:  store,
		mailer: mailer,
		at:     at,
		stop:   make(chan struct{}),
		now:    time.Now,
	}
}

// nextRun returns the next occurrence of hh:mm after now, in now's
// location. A malformed time falls back to 20:00.
func nextRun(now time.Time, at string) time.Time {
	var hh, mm int
	if _, err := fmt.Sscanf(at, "%d:%d", &hh, &mm); err != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		hh, mm = 20, 0
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Start launches the timer goroutine. Stop() or ctx cancellation ends it.
func (j *SummaryJob) Start(ctx context.Context) {
	go func() {
		for {
			wait := time.Until(nextRun(j.now(), j.at))
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
				j.RunOnce(ctx)
			case <-j.stop:
				timer.Stop()
				return
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}
	}()
	log.Printf("daily summary job scheduled for %s", j.at)
}

func (j *SummaryJob) Stop() {
	close(j.stop)
}

// RunOnce mails today's summary to every owner with at least one entry
// dated today. Owners are handled sequentially; one owner's failure
// never blocks the rest.
func (j *SummaryJob) RunOnce(ctx context.Context) {
	owners, err := j.store.Owners()
	if err != nil {
		log.Printf("summary job: listing owners: %v", err)
		return
	}
	today := j.now().Format(models.DateLayout)

	for _, owner := range owners {
		select {
		case <-ctx.Done():
			return
		default:
		}

		entries, err := j.store.LoadAll(owner)
		if err != nil {
			log.Printf("summary job: loading %s: %v", owner, err)
			continue
		}
		body, ok, err := TodaySummary(entries, today)
		if err != nil {
			log.Printf("summary job: summarizing %s: %v", owner, err)
			continue
		}
		if !ok {
			continue // nothing logged today
		}

		subject := "Your NutriPal diary summary for " + today
		if err := j.mailer.Send(owner, subject, body); err != nil {
			log.Printf("summary job: %v", &models.DispatchError{Recipient: owner, Err: err})
		}
	}
}
