package render

import (
	"fmt"
	"sync"
	"time"
)

// Panel is the latest content of one container.
type Panel struct {
	Container string
	Figure    []byte
	Image     []byte
	ImageType string
	Renders   int
	UpdatedAt time.Time
}

// Board holds the containers charts can be rendered into. Rendering into a
// container that was never declared fails, the same way a page without the
// target element cannot be drawn on.
type Board struct {
	mu     sync.RWMutex
	panels map[string]*Panel
	now    func() time.Time
}

// NewBoard creates a board with the given containers declared.
func NewBoard(containers ...string) *Board {
	b := &Board{panels: make(map[string]*Panel), now: time.Now}
	for _, id := range containers {
		b.Declare(id)
	}
	return b
}

// Declare adds an empty container. Declaring an existing one is a no-op.
func (b *Board) Declare(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.panels[id]; !ok {
		b.panels[id] = &Panel{Container: id}
	}
}

// Has reports whether the container is declared.
func (b *Board) Has(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.panels[id]
	return ok
}

// Panel returns a copy of the container content.
func (b *Board) Panel(id string) (Panel, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.panels[id]
	if !ok {
		return Panel{}, false
	}
	out := *p
	out.Figure = append([]byte(nil), p.Figure...)
	out.Image = append([]byte(nil), p.Image...)
	return out, true
}

func (b *Board) update(id string, fn func(p *Panel)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.panels[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownContainer, id)
	}
	fn(p)
	p.Renders++
	p.UpdatedAt = b.now()
	return nil
}

// SetFigure stores figure JSON for the container.
func (b *Board) SetFigure(id string, figure []byte) error {
	return b.update(id, func(p *Panel) { p.Figure = figure })
}

// SetImage stores an encoded image for the container.
func (b *Board) SetImage(id string, image []byte, contentType string) error {
	return b.update(id, func(p *Panel) {
		p.Image = image
		p.ImageType = contentType
	})
}
