package hotplug

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one call that fires once the
// burst has been quiet for the configured interval. The most recent trigger
// is delivered along with the number it absorbed.
type Debouncer struct {
	interval time.Duration
	fire     func(Trigger, int)

	mu      sync.Mutex
	timer   *time.Timer
	pending Trigger
	count   int
	stopped bool
}

// NewDebouncer returns a Debouncer. A non-positive interval fires every
// trigger immediately.
func NewDebouncer(interval time.Duration, fire func(Trigger, int)) *Debouncer {
	return &Debouncer{interval: interval, fire: fire}
}

// Add records a trigger and (re)arms the timer.
func (d *Debouncer) Add(t Trigger) {
	if t.At.IsZero() {
		t.At = time.Now()
	}
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.interval <= 0 {
		d.mu.Unlock()
		d.fire(t, 1)
		return
	}
	d.pending = t
	d.count++
	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, d.flush)
	} else {
		d.timer.Reset(d.interval)
	}
	d.mu.Unlock()
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || d.count == 0 {
		d.mu.Unlock()
		return
	}
	t, n := d.pending, d.count
	d.pending = Trigger{}
	d.count = 0
	d.mu.Unlock()
	d.fire(t, n)
}

// Stop drops any pending trigger. Add is a no-op afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.count = 0
}
