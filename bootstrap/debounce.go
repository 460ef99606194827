package bootstrap

import "time"

// debouncer coalesces bursts of events into a single trailing-edge tick.
// It is owned by one goroutine and is not safe for concurrent use.
type debouncer struct {
	interval time.Duration
	timer    *time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

// touch records an event and restarts the quiet period.
func (d *debouncer) touch() {
	if d.timer == nil {
		d.timer = time.NewTimer(d.interval)
		return
	}
	d.timer.Reset(d.interval)
}

// C fires once the quiet period after the last touch has elapsed.
// It is nil, and so never ready, before the first touch.
func (d *debouncer) C() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
