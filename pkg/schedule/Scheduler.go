// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/navwar/gomirror/pkg/log"
)

// Scheduler runs a tick function repeatedly, one call at a time.
// The first tick runs as soon as the scheduler starts and every later tick
// runs one interval after the previous tick returned.
type Scheduler struct {
	interval time.Duration
	clock    clockwork.Clock
	logger   log.Logger

	mutex sync.Mutex
	state State
	ticks int
}

func New(input *NewInput) *Scheduler {
	clock := input.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		interval: input.Interval,
		clock:    clock,
		logger:   input.Logger,
		state:    StateIdle,
	}
}

// State returns the current phase of the scheduler.
func (s *Scheduler) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Ticks returns the number of ticks started so far.
func (s *Scheduler) Ticks() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.ticks
}

func (s *Scheduler) setState(state State) {
	s.mutex.Lock()
	s.state = state
	s.mutex.Unlock()
}

func (s *Scheduler) log(msg string, fields ...map[string]interface{}) {
	if s.logger != nil {
		_ = s.logger.Log(msg, fields...)
	}
}

// Start blocks until ctx is cancelled, calling tick on schedule.
// Cancellation is only observed between ticks: tick receives a context that is never cancelled,
// so a tick in progress always completes before Start returns.
// An error returned by tick is logged and does not stop the scheduler.
func (s *Scheduler) Start(ctx context.Context, tick func(ctx context.Context) error) error {
	if s.interval <= 0 {
		return fmt.Errorf("interval must be greater than zero, found %s", s.interval)
	}
	if tick == nil {
		return errors.New("tick function cannot be nil")
	}

	s.mutex.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mutex.Unlock()
		return fmt.Errorf("scheduler cannot be started when %s", state)
	}
	s.state = StateRunning
	s.mutex.Unlock()

	defer s.setState(StateStopped)

	tickContext := context.WithoutCancel(ctx)

	for {
		if ctx.Err() != nil {
			s.log("Stopping scheduler", map[string]interface{}{
				"ticks": s.Ticks(),
			})
			return nil
		}

		s.run(tickContext, tick)

		s.setState(StateWaiting)
		select {
		case <-ctx.Done():
		case <-s.clock.After(s.interval):
		}
	}
}

func (s *Scheduler) run(ctx context.Context, tick func(ctx context.Context) error) {
	s.mutex.Lock()
	s.state = StateRunning
	s.ticks++
	n := s.ticks
	s.mutex.Unlock()

	start := s.clock.Now()
	err := tick(ctx)
	if err != nil {
		s.log("Error running tick", map[string]interface{}{
			"tick": n,
			"err":  err.Error(),
		})
		return
	}
	s.log("Done running tick", map[string]interface{}{
		"tick":     n,
		"duration": s.clock.Since(start).String(),
		"next":     s.clock.Now().Add(s.interval).Format(time.RFC3339),
	})
}
