// Package session tracks per-chat conversation state: which free-text prompt,
// if any, is outstanding, and the single reply timer owned by each session.
package session

import (
	"sync"
	"time"
)

// State identifies the conversation step a chat is in.
type State string

const (
	// StateIdle indicates there is no outstanding prompt.
	StateIdle State = "idle"
	// StateAwaitingCity means the bot asked which city to look up.
	StateAwaitingCity State = "awaiting_city"
	// StateAwaitingIMEI means the bot asked for an IMEI to check.
	StateAwaitingIMEI State = "awaiting_imei"
)

// TimeoutFunc runs when a prompt's reply window closes with no reply.
type TimeoutFunc func(chatID int64)

// Session holds the conversation state for one chat. At most one prompt is
// outstanding and at most one timer is live at any time.
type Session struct {
	chatID int64

	mu    sync.Mutex
	state State
	timer *time.Timer
	gen   uint64
}

// Lock serializes message handling for this chat. Handlers hold the lock for
// the whole of processing one message; every other method except the internal
// timer callback expects it held. Different chats are fully independent.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// ChatID returns the chat this session belongs to.
func (s *Session) ChatID() int64 {
	return s.chatID
}

// State returns the current conversation state.
func (s *Session) State() State {
	return s.state
}

// Prompt moves the session into state and arms a fresh reply timer, replacing
// any timer armed before it. onTimeout runs if the window expires first.
func (s *Session) Prompt(state State, window time.Duration, onTimeout TimeoutFunc) {
	s.disarm()
	s.state = state
	gen := s.gen
	s.timer = time.AfterFunc(window, func() {
		s.expire(gen, onTimeout)
	})
}

// Settle resolves the outstanding prompt: the timer is disarmed and the
// session returns to idle. Safe to call on an already idle session.
func (s *Session) Settle() {
	s.disarm()
	s.state = StateIdle
}

// TimerArmed reports whether a reply timer is currently live.
func (s *Session) TimerArmed() bool {
	return s.timer != nil
}

// disarm stops and clears the timer. Bumping the generation turns a callback
// that has already fired, but not yet run, into a no-op.
func (s *Session) disarm() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expire is the timer callback. If the session was settled or re-prompted
// after this timer was armed, the generation no longer matches and the
// callback does nothing; this is how a lost cancellation race stays silent.
func (s *Session) expire(gen uint64, onTimeout TimeoutFunc) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.state = StateIdle
	s.mu.Unlock()

	onTimeout(s.chatID)
}
