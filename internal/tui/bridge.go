package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/surfaceview/pkg/controller"
)

// renderMsg carries one view model change into the bubbletea loop.
type renderMsg struct {
	prev, next controller.ViewModel
}

// bridge is the controller.View of the terminal. Render only queues, so the
// controller can be driven synchronously from Update without blocking on
// the program's message channel.
type bridge struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []renderMsg
	closed bool
}

func newBridge() *bridge {
	b := &bridge{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *bridge) Render(prev, next controller.ViewModel) {
	b.mu.Lock()
	b.queue = append(b.queue, renderMsg{prev: prev, next: next})
	b.mu.Unlock()
	b.cond.Signal()
}

// wait is a tea.Cmd that yields the next queued change. Update re-issues it
// after every renderMsg.
func (b *bridge) wait() tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.queue) == 0 && !b.closed {
		b.cond.Wait()
	}
	if b.closed {
		return nil
	}
	return b.pop()
}

// poll returns the next queued change without blocking.
func (b *bridge) poll() (renderMsg, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return renderMsg{}, false
	}
	return b.pop(), true
}

func (b *bridge) pop() renderMsg {
	msg := b.queue[0]
	b.queue = b.queue[1:]
	return msg
}

func (b *bridge) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cond.Broadcast()
}
