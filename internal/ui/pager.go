package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/noborus/ov/oviewer"
)

// errNoTerminal is returned when the pager has no program to borrow the terminal from
var errNoTerminal = errors.New("program not set")

// terminal is the part of *tea.Program the pager needs
type terminal interface {
	ReleaseTerminal() error
	RestoreTerminal() error
}

// Pager shows text full screen in ov. It hands the terminal over from
// Bubble Tea for as long as ov runs.
type Pager struct {
	mu     sync.Mutex
	term   terminal
	settle time.Duration
	view   func(title, content string) error
}

// NewPager returns a pager backed by ov
func NewPager() *Pager {
	return &Pager{settle: 100 * time.Millisecond, view: runOviewer}
}

// SetProgram sets the program whose terminal the pager borrows
func (p *Pager) SetProgram(t terminal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.term = t
}

// Page blocks until the user quits the pager
func (p *Pager) Page(ctx context.Context, title, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// one pager at a time
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.term == nil {
		return errNoTerminal
	}
	if err := p.term.ReleaseTerminal(); err != nil {
		return fmt.Errorf("release terminal: %w", err)
	}
	defer func() {
		// let ov finish tearing down its screen before Bubble Tea takes over
		time.Sleep(p.settle)
		_ = p.term.RestoreTerminal()
	}()

	return p.view(title, content)
}

// runOviewer shows content in ov. The title is already the first line of
// every document we page, so it is not repeated.
func runOviewer(_ string, content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("start pager: %w", err)
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	root.SetConfig(config)
	return root.Run()
}
