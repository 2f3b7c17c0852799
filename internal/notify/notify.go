// Package notify is the user-visible notification sink. Calls are
// fire-and-forget; nothing is returned to the caller.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Console prints one prefixed line per notification.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) write(prefix, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", prefix, msg)
}

func (c *Console) Success(msg string) { c.write("✓", msg) }

func (c *Console) Error(msg string) { c.write("✗", msg) }

func (c *Console) Info(msg string) { c.write("i", msg) }

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Info(string)    {}

// Discard drops every notification.
func Discard() Notifier { return discard{} }
