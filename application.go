package dyntable

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/dyntable/reconcile"
)

// updatesQueueSize bounds the functions waiting for the event loop.
const updatesQueueSize = 100

type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application owns the tcell screen and runs the event loop. Every change to
// primitives happens on that loop: key and mouse handlers, functions passed to
// QueueUpdate and the callbacks scheduled with After. That makes it the
// reconcile.Scheduler of a DynamicTable.
//
//	if err := dyntable.NewApplication().SetRoot(table).Run(); err != nil {
//		log.Fatal(err)
//	}
type Application struct {
	mu     sync.RWMutex
	screen tcell.Screen
	root   Primitive
	focus  Primitive
	clear  bool

	updates  chan queuedUpdate
	done     chan struct{}
	stopOnce sync.Once

	// Loop-only state.
	mouse        mouseState
	mouseCapture Primitive
	timers       *reconcile.Queue
	timer        *time.Timer
	epoch        time.Time
	now          func() time.Time
}

var _ reconcile.Scheduler = (*Application)(nil)

// NewApplication returns an application without a screen. Run creates one
// unless SetScreen was called.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
		done:    make(chan struct{}),
		timers:  reconcile.NewQueue(),
		epoch:   time.Now(),
		now:     time.Now,
	}
}

// SetScreen uses screen instead of the terminal. It only has an effect before
// the first screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.clear = true
	}
	return a
}

// SetRoot shows root full screen and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.clear = true
	a.mu.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p, which may hand the
// focus on to one of its children.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	previous := a.focus
	a.focus = p
	a.mu.Unlock()

	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(child Primitive) { a.SetFocus(child) })
	}
	return a
}

// Run draws the root and processes events until Stop is called or the
// screen reports an error, which Run returns.
func (a *Application) Run() error {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// A panic leaves the terminal in raw mode unless the screen is finalized.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	events := screen.EventQ()
	for {
		select {
		case event := <-events:
			if event == nil {
				return nil
			}
			if err, ok := event.(*tcell.EventError); ok {
				a.Stop()
				return err
			}
			if a.handleEvent(event) {
				a.draw()
			}
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				close(update.done)
			}
		case <-a.done:
			return nil
		}
	}
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		return a.screen, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	a.screen = screen
	return screen, nil
}

// handleEvent dispatches one terminal event and reports whether the screen
// needs redrawing.
func (a *Application) handleEvent(event tcell.Event) bool {
	a.mu.RLock()
	root := a.root
	a.mu.RUnlock()
	if root == nil {
		return false
	}

	switch event := event.(type) {
	case *tcell.EventKey:
		if !root.HasFocus() {
			return false
		}
		return a.executeCommand(root.InputHandler(event))
	case *tcell.EventMouse:
		x, y := event.Position()
		redraw := false
		for _, action := range a.mouse.actions(x, y, event.Buttons(), a.now()) {
			target := a.mouseCapture
			if target == nil {
				target = root
			}
			capture, cmd := target.MouseHandler(action, event)
			a.mouseCapture = capture
			if a.executeCommand(cmd) {
				redraw = true
			}
		}
		return redraw
	case *tcell.EventResize:
		a.mu.Lock()
		a.clear = true
		a.mu.Unlock()
		return true
	}
	return false
}

// Stop finalizes the screen and makes Run return. It is safe to call from
// any goroutine, more than once.
func (a *Application) Stop() {
	a.stopOnce.Do(func() { close(a.done) })

	a.mu.Lock()
	screen := a.screen
	a.screen = nil
	a.mu.Unlock()
	if screen != nil {
		screen.Fini()
	}
}

// draw lays the root out over the whole screen and shows it. tcell only
// sends the cells that changed, so the screen is cleared only after a resize
// or a new root.
func (a *Application) draw() {
	a.mu.Lock()
	screen, root, clear := a.screen, a.root, a.clear
	a.clear = false
	a.mu.Unlock()
	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if clear {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// QueueUpdate runs f on the event loop and waits for it. It must not be
// called from the event loop, and returns without running f once the
// application is stopped.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: done}:
	case <-a.done:
		return a
	}
	select {
	case <-done:
	case <-a.done:
	}
	return a
}

// QueueUpdateDraw is QueueUpdate followed by a redraw.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			redraw = a.executeCommand(item) || redraw
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		a.mu.RLock()
		changed := c.Target != nil && a.focus != c.Target
		a.mu.RUnlock()
		if changed {
			a.SetFocus(c.Target)
		}
		return changed
	}
	return false
}
