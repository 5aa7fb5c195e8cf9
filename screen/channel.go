package screen

import (
	"errors"
	"sync"
)

var (
	// ErrReceiverClosed is returned by Send once the host has gone away
	ErrReceiverClosed = errors.New("screen: receiver closed")

	// ErrNoSender is returned by Send on a screen that was never wired to a host
	ErrNoSender = errors.New("screen: sender not set")
)

// mailbox is an unbounded FIFO shared by one receiver and any number of senders
type mailbox struct {
	mu     sync.Mutex
	queue  []Command
	closed bool
}

// Sender is the producer end of a command channel, safe to copy and share
type Sender struct {
	box *mailbox
}

// Receiver is the single consumer end owned by the host
type Receiver struct {
	box *mailbox
}

// NewChannel creates an unbounded command channel
func NewChannel() (*Sender, *Receiver) {
	box := &mailbox{}
	return &Sender{box: box}, &Receiver{box: box}
}

// Send enqueues cmd; it never blocks
func (s *Sender) Send(cmd Command) error {
	if s == nil || s.box == nil {
		return ErrNoSender
	}
	s.box.mu.Lock()
	defer s.box.mu.Unlock()

	if s.box.closed {
		return ErrReceiverClosed
	}
	s.box.queue = append(s.box.queue, cmd)
	return nil
}

// TryRecv pops the oldest command if any
func (r *Receiver) TryRecv() (Command, bool) {
	r.box.mu.Lock()
	defer r.box.mu.Unlock()

	if len(r.box.queue) == 0 {
		return nil, false
	}
	cmd := r.box.queue[0]
	r.box.queue[0] = nil
	r.box.queue = r.box.queue[1:]
	return cmd, true
}

// Drain returns every pending command in send order and empties the queue
func (r *Receiver) Drain() []Command {
	r.box.mu.Lock()
	defer r.box.mu.Unlock()

	if len(r.box.queue) == 0 {
		return nil
	}
	out := r.box.queue
	r.box.queue = nil
	return out
}

// Len returns the number of pending commands
func (r *Receiver) Len() int {
	r.box.mu.Lock()
	defer r.box.mu.Unlock()
	return len(r.box.queue)
}

// Close drops pending commands and makes further sends fail
// Idempotent
func (r *Receiver) Close() {
	r.box.mu.Lock()
	defer r.box.mu.Unlock()
	r.box.closed = true
	r.box.queue = nil
}
