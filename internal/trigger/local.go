// ABOUTME: In-process trigger backend built on gocron daily jobs.
// ABOUTME: Keeps the live trigger map as owned state inside the instance.
package trigger

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Local is an in-process Backend that fires triggers from a gocron
// scheduler running in the daemon. Permission is always granted.
type Local struct {
	scheduler gocron.Scheduler
	onFire    FireHandler
	channel   ChannelConfig
	log       zerolog.Logger

	mu      sync.Mutex
	daily   map[string]gocron.Job // medication id -> recurring job
	oneShot map[string]gocron.Job // medication id -> snooze job
}

// NewLocal creates a local trigger backend firing into handler.
func NewLocal(handler FireHandler, channel ChannelConfig, log zerolog.Logger) (*Local, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Local{
		scheduler: scheduler,
		onFire:    handler,
		channel:   channel,
		log:       log,
		daily:     make(map[string]gocron.Job),
		oneShot:   make(map[string]gocron.Job),
	}, nil
}

// Start begins firing scheduled triggers.
func (l *Local) Start() {
	l.scheduler.Start()
}

// Stop shuts the scheduler down, cancelling all live triggers.
func (l *Local) Stop() error {
	return l.scheduler.Shutdown()
}

// RequestPermission always grants; the local backend needs none.
func (l *Local) RequestPermission() (bool, error) {
	return true, nil
}

// Schedule registers a daily trigger at hour:minute for id, replacing
// any existing trigger for the same id.
func (l *Local) Schedule(id string, hour, minute int, p Payload) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.daily[id]; ok {
		if err := l.scheduler.RemoveJob(existing.ID()); err != nil {
			return "", fmt.Errorf("replace trigger %s: %w", id, err)
		}
		delete(l.daily, id)
	}

	payload := p // copy for the task closure
	job, err := l.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(hour), uint(minute), 0),
		)),
		gocron.NewTask(func() {
			l.fire(id, payload)
		}),
		gocron.WithName(id),
		gocron.WithTags(l.channel.Channel),
	)
	if err != nil {
		return "", fmt.Errorf("schedule trigger %s: %w", id, err)
	}

	l.daily[id] = job
	l.log.Debug().Str("medication_id", id).
		Str("at", fmt.Sprintf("%02d:%02d", hour, minute)).
		Msg("scheduled daily trigger")
	return job.ID().String(), nil
}

// ScheduleOnce registers a one-shot trigger at the given instant,
// replacing any pending one-shot for the same id.
func (l *Local) ScheduleOnce(id string, at time.Time, p Payload) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.oneShot[id]; ok {
		_ = l.scheduler.RemoveJob(existing.ID())
		delete(l.oneShot, id)
	}

	payload := p
	job, err := l.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(func() {
			l.mu.Lock()
			delete(l.oneShot, id)
			l.mu.Unlock()
			l.fire(id, payload)
		}),
		gocron.WithName(id+":snooze"),
	)
	if err != nil {
		return "", fmt.Errorf("schedule one-shot trigger %s: %w", id, err)
	}

	l.oneShot[id] = job
	l.log.Debug().Str("medication_id", id).Time("at", at).Msg("scheduled one-shot trigger")
	return job.ID().String(), nil
}

// Cancel removes the daily trigger and any pending snooze for id.
func (l *Local) Cancel(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if job, ok := l.daily[id]; ok {
		if err := l.scheduler.RemoveJob(job.ID()); err != nil {
			return fmt.Errorf("cancel trigger %s: %w", id, err)
		}
		delete(l.daily, id)
	}
	if job, ok := l.oneShot[id]; ok {
		_ = l.scheduler.RemoveJob(job.ID())
		delete(l.oneShot, id)
	}
	return nil
}

// ListScheduled returns medication ids with live daily triggers.
func (l *Local) ListScheduled() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.daily))
	for id := range l.daily {
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *Local) fire(id string, p Payload) {
	l.log.Info().Str("medication_id", id).Msg("trigger fired")
	if l.onFire != nil {
		l.onFire(id, p)
	}
}
