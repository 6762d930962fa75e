// Package spinning shows a spinning symbol followed by a status line while a program is busy,
// and handles interruptions (ctrl+C) gracefully.
package spinning

import (
	"context"
	"fmt"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeDots  = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

	// Theme used by new Spinning displays.
	Theme = ThemeDots

	// Period between updates of the display.
	Period = 250 * time.Millisecond
)

// SafeInterrupt captures SIGINT (ctrl+C) and SIGTERM and calls onInterrupt.
// If the program hasn't exited after gracePeriod, it resets the terminal and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Interrupted (signal %q), shutting down in at most %s", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Grace period of %s expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// Spinning display running on a separate goroutine, until Done is called.
type Spinning struct {
	w      io.Writer
	status func() string
	wg     sync.WaitGroup
	cancel func()
}

// New starts a spinning display on w. If status is not nil, it is called at every update and its
// result is printed after the spinning symbol.
func New(ctx context.Context, w io.Writer, status func() string) *Spinning {
	s := &Spinning{w: w, status: status}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		fmt.Fprint(s.w, "\033[?25l")       // Hide cursor.
		defer fmt.Fprint(s.w, "\033[?25h") // Restore cursor.
		for idx := 0; ; idx = (idx + 1) % len(Theme) {
			s.draw(Theme[idx])
			select {
			case <-ctx.Done():
				s.draw(' ')
				fmt.Fprintln(s.w)
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// draw the symbol and the status, overwriting the current line.
func (s *Spinning) draw(symbol rune) {
	line := string(symbol)
	if s.status != nil {
		line += " " + s.status()
	}
	fmt.Fprintf(s.w, "\r%s\033[0K", line)
}

// Done stops the display and waits for it to be cleared.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
