// ABOUTME: Process-wide daily rollover clock firing at local midnight.
// ABOUTME: Drives the adherence rollover and a full reminder resync.
package clock

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const midnightSpec = "0 0 * * *"

// Roller finalizes the ending day's adherence state.
type Roller interface {
	Rollover(now time.Time) error
}

// Resyncer reconciles reminder triggers with the medication list.
type Resyncer interface {
	ResyncAll() error
}

// Midnight fires once at every local midnight. If the process is not
// running at the scheduled instant the fire is skipped, not replayed;
// the next rollover happens at the following midnight.
type Midnight struct {
	cron     *cron.Cron
	roller   Roller
	resyncer Resyncer
	log      zerolog.Logger
}

// NewMidnight creates a rollover clock in the local timezone.
func NewMidnight(roller Roller, resyncer Resyncer, log zerolog.Logger) (*Midnight, error) {
	return newWithSpec(midnightSpec, roller, resyncer, log)
}

func newWithSpec(spec string, roller Roller, resyncer Resyncer, log zerolog.Logger) (*Midnight, error) {
	m := &Midnight{
		cron:     cron.New(cron.WithLocation(time.Local)),
		roller:   roller,
		resyncer: resyncer,
		log:      log,
	}
	if _, err := m.cron.AddFunc(spec, m.fire); err != nil {
		return nil, fmt.Errorf("schedule rollover: %w", err)
	}
	return m, nil
}

// Start arms the clock.
func (m *Midnight) Start() {
	m.cron.Start()
	m.log.Info().Time("next", NextMidnight(time.Now())).Msg("rollover clock armed")
}

// Stop disarms the clock and waits for a running fire to finish.
func (m *Midnight) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

func (m *Midnight) fire() {
	now := time.Now()
	if err := m.roller.Rollover(now); err != nil {
		m.log.Error().Err(err).Msg("rollover failed")
	}
	if err := m.resyncer.ResyncAll(); err != nil {
		m.log.Error().Err(err).Msg("post-rollover resync failed")
	}
}

// NextMidnight returns the next local midnight after now.
func NextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
