package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/AVBharath10/ai-tui/internal/review"
	"github.com/AVBharath10/ai-tui/internal/term"
	"github.com/AVBharath10/ai-tui/internal/ui"
	"github.com/AVBharath10/ai-tui/internal/watch"
)

// tickInterval bounds how long the loop waits with nothing to do, keeping
// relative timestamps in the sidebar fresh.
const tickInterval = 50 * time.Millisecond

// loop is the coordinator: the only code path that mutates shared state.
// It drains the merged event stream (process output, filesystem
// notifications, operator input) and renders a frame per iteration.
func (app *Application) loop() error {
	uiEvents := make(chan tcell.Event, 16)
	uiQuit := make(chan struct{})
	go app.screen.ChannelEvents(uiEvents, uiQuit)
	defer close(uiQuit)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		app.render()

		select {
		case <-app.done:
			return ErrQuit

		case chunk, ok := <-app.sess.Output():
			if !ok {
				app.logger.Info("child process ended")
				return nil
			}
			app.emu.Feed(chunk)
			if !app.drainOutput() {
				app.logger.Info("child process ended")
				return nil
			}

		case event, ok := <-app.watcher.Events():
			if !ok {
				app.logger.Warn("watcher closed unexpectedly")
				return nil
			}
			app.handleFSEvent(event)

		case err, ok := <-app.watcher.Errors():
			if ok && err != nil {
				app.logger.Warn("watch error: %v", err)
			}

		case ev, ok := <-uiEvents:
			if !ok {
				return nil
			}
			if err := app.handleUIEvent(ev); err != nil {
				return err
			}

		case <-ticker.C:
			// Redraw only.
		}
	}
}

// drainOutput consumes any further pending output without blocking.
// Returns false when the output channel has closed.
func (app *Application) drainOutput() bool {
	for {
		select {
		case chunk, ok := <-app.sess.Output():
			if !ok {
				return false
			}
			app.emu.Feed(chunk)
		default:
			return true
		}
	}
}

// handleFSEvent runs one raw notification through the filter and the
// resolver and, when it survives as a real content change, enqueues it for
// approval and records it in the change log.
func (app *Application) handleFSEvent(event watch.Event) {
	change, ok := app.filter.Apply(event)
	if !ok {
		return
	}

	pending, ok := app.resolver.Resolve(change)
	if !ok {
		return
	}

	wasIdle := app.queue.State() == review.Idle
	app.queue.Enqueue(pending)
	app.changelog.Add(review.FileChange{
		Name:      pending.Name,
		Op:        pending.Op,
		Timestamp: event.Timestamp,
		Diff:      pending.Diff,
	})
	if wasIdle {
		app.painter.ResetDiffScroll()
	}
	app.logger.Debug("queued %s %s (%d pending)", pending.Op, pending.Name, app.queue.Len())
}

// handleUIEvent routes operator input. While a decision is pending, only
// the decision keys and the supervisor chords are honored; everything else
// is consumed without reaching the child process.
func (app *Application) handleUIEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.syncPtySize()
		app.screen.Sync()
		return nil

	case *tcell.EventKey:
		return app.handleKey(ev)

	default:
		return nil
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) error {
	// Supervisor chords work in both modes.
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlT:
		name := app.painter.CycleTheme()
		app.logger.Debug("theme switched to %s", name)
		return nil
	case tcell.KeyCtrlB:
		app.painter.ToggleSidebar()
		app.syncPtySize()
		return nil
	case tcell.KeyCtrlL:
		app.changelog.Clear()
		return nil
	}

	if app.queue.State() == review.Reviewing {
		return app.handleDecisionKey(ev)
	}

	if bytes := encodeKey(ev); bytes != nil {
		if err := app.sess.Write(bytes); err != nil {
			// Treated as the process going away; the closed output
			// channel ends the loop on the next iteration.
			app.logger.Warn("forward input: %v", err)
		}
	}
	return nil
}

// handleDecisionKey consumes input while Reviewing. The decision keys
// resolve the head of the queue; arrows scroll the diff; everything else
// is swallowed so no keystroke leaks to the child mid-review.
func (app *Application) handleDecisionKey(ev *tcell.EventKey) error {
	switch {
	case ev.Key() == tcell.KeyUp:
		app.painter.ScrollDiff(-1)

	case ev.Key() == tcell.KeyDown:
		app.painter.ScrollDiff(1)

	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
		head := app.queue.Head()
		if err := app.queue.Accept(); err != nil {
			app.logger.Error("accept: %v", err)
		} else {
			app.logger.Info("accepted %s", head.Name)
		}
		app.painter.ResetDiffScroll()

	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'):
		head := app.queue.Head()
		if err := app.queue.Reject(); err != nil {
			// Best effort: the revert failed but the decision stands.
			app.logger.Error("reject %s: %v", head.Name, err)
		} else {
			app.logger.Info("rejected %s, reverted on disk", head.Name)
		}
		app.painter.ResetDiffScroll()
	}
	return nil
}

// syncPtySize propagates the current terminal pane geometry to the pty and
// rebuilds the emulator. The replacement discards scroll-back; the child
// repaints after the resize signal.
func (app *Application) syncPtySize() {
	rows, cols := app.painter.TermSize()
	if curRows, curCols := app.emu.Size(); curRows == rows && curCols == cols {
		return
	}
	if err := app.sess.Resize(rows, cols); err != nil {
		app.logger.Warn("pty resize: %v", err)
		return
	}
	app.emu = term.New(rows, cols)
	app.logger.Debug("resized pty to %dx%d", rows, cols)
}

// render hands a coherent state snapshot to the painter.
func (app *Application) render() {
	app.painter.Draw(&ui.State{
		Screen:   app.emu.Snapshot(),
		Mode:     app.queue.State(),
		Head:     app.queue.Head(),
		Entries:  app.changelog.Entries(),
		QueueLen: app.queue.Len(),
		Now:      time.Now(),
	})
}
