// Package notify implements the process-wide, single-slot message holder
// used for success/failure toasts. Only one message is live at a time; a new
// one replaces the current and restarts the auto-clear timer.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is the one ephemeral notification currently on display.
type Message struct {
	Text string
	Kind Kind
}

// Notifier holds at most one Message and clears it after TTL. An optional
// sink is invoked on every state change (with nil on clear) so the CLI can
// print the toast as it appears.
type Notifier struct {
	mu    sync.Mutex
	cur   *Message
	timer *time.Timer
	gen   uint64
	ttl   time.Duration
	sink  func(*Message)
}

const DefaultTTL = 3 * time.Second

func New(ttl time.Duration, sink func(*Message)) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, sink: sink}
}

// Success shows a success message, replacing any current one.
func (n *Notifier) Success(text string) {
	n.show(Message{Text: text, Kind: KindSuccess})
}

// Error shows an error message, replacing any current one.
func (n *Notifier) Error(text string) {
	n.show(Message{Text: text, Kind: KindError})
}

// Current returns the live message, or nil when the slot is empty.
func (n *Notifier) Current() *Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cur == nil {
		return nil
	}
	m := *n.cur
	return &m
}

// Clear cancels the timer and empties the slot.
func (n *Notifier) Clear() {
	n.mu.Lock()
	n.stopTimerLocked()
	changed := n.cur != nil
	n.cur = nil
	sink := n.sink
	n.mu.Unlock()
	if changed && sink != nil {
		sink(nil)
	}
}

func (n *Notifier) show(m Message) {
	n.mu.Lock()
	n.stopTimerLocked()
	n.cur = &m
	n.gen++
	gen := n.gen
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
	sink := n.sink
	n.mu.Unlock()
	if sink != nil {
		sink(&m)
	}
}

// expire clears the slot only if no newer message replaced the one whose
// timer fired.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if n.gen != gen {
		n.mu.Unlock()
		return
	}
	n.cur = nil
	n.timer = nil
	sink := n.sink
	n.mu.Unlock()
	if sink != nil {
		sink(nil)
	}
}

func (n *Notifier) stopTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
