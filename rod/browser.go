package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced. Chrome's memory baseline only grows while it runs.
const DefaultMaxPages = 75

// browser owns one Chrome process, launched on first use and replaced
// after maxPages renders. A remote browser is connected to instead and
// never recycled.
type browser struct {
	remote   string
	bin      string
	maxPages int

	mu       sync.Mutex
	current  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	closed   bool
}

// acquire returns a connected browser, launching or recycling as needed.
func (b *browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errClosed
	}
	if b.current != nil && b.remote == "" && b.pages >= b.maxPages {
		// Keep the old browser if a replacement cannot start.
		if next, l, err := b.start(); err == nil {
			b.shutdown()
			b.current, b.launcher, b.pages = next, l, 0
		}
	}
	if b.current == nil {
		next, l, err := b.start()
		if err != nil {
			return nil, err
		}
		b.current, b.launcher, b.pages = next, l, 0
	}
	b.pages++
	return b.current, nil
}

func (b *browser) start() (*rod.Browser, *launcher.Launcher, error) {
	if b.remote != "" {
		u, err := launcher.ResolveURL(b.remote)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving remote browser: %w", err)
		}
		br := rod.New().ControlURL(u)
		if err := br.Connect(); err != nil {
			return nil, nil, fmt.Errorf("connecting to remote browser: %w", err)
		}
		return br, nil, nil
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}
	br := rod.New().ControlURL(u)
	if err := br.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return br, l, nil
}

// shutdown closes the current browser. Must be called with mu held.
func (b *browser) shutdown() error {
	var err error
	if b.current != nil {
		err = b.current.Close()
		b.current = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.shutdown()
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
