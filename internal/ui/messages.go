package ui

import (
	"sync"
	"time"
)

// Message is an announcement with the time it was made
type Message struct {
	Text      string
	Timestamp time.Time
}

// LiveRegion keeps the last N drag announcements. It satisfies
// dnd.Announcer so a controller can speak into it directly.
type LiveRegion struct {
	messages []*Message
	maxSize  int
	now      func() time.Time
	mu       sync.Mutex
}

// NewLiveRegion creates a live region holding at most maxSize messages
func NewLiveRegion(maxSize int) *LiveRegion {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LiveRegion{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// Announce records a message
func (lr *LiveRegion) Announce(text string) {
	if text == "" {
		return
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()

	lr.messages = append(lr.messages, &Message{
		Text:      text,
		Timestamp: lr.now(),
	})
	if len(lr.messages) > lr.maxSize {
		lr.messages = lr.messages[len(lr.messages)-lr.maxSize:]
	}
}

// Latest returns the newest message if it is younger than maxAge
func (lr *LiveRegion) Latest(maxAge time.Duration) (string, bool) {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	if len(lr.messages) == 0 {
		return "", false
	}
	last := lr.messages[len(lr.messages)-1]
	if lr.now().Sub(last.Timestamp) > maxAge {
		return "", false
	}
	return last.Text, true
}

// Messages returns a copy of all messages, oldest first
func (lr *LiveRegion) Messages() []*Message {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	result := make([]*Message, len(lr.messages))
	copy(result, lr.messages)
	return result
}

func (lr *LiveRegion) Clear() {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.messages = lr.messages[:0]
}
