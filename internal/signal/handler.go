// Package signal provides graceful shutdown handling for bob CLI commands.
//
// The first interrupt cancels the run context; in-flight build processes
// are left to finish their current command rather than being killed
// mid-write, and no new command starts. A second interrupt abandons the
// graceful path and exits immediately.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// exitCodeInterrupt is the conventional exit status for death by SIGINT.
const exitCodeInterrupt = 130

// Handler manages graceful shutdown by listening for interrupt signals.
// It wraps a context and cancels it when SIGINT or SIGTERM is received.
type Handler struct {
	ctx         context.Context //nolint:containedctx // intentional: handler manages context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{} // signals listen() to exit cleanly
	forceExit   func()        // invoked on the second interrupt
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
}

// NewHandler creates a signal handler that listens for SIGINT and SIGTERM.
// The first signal cancels the context and closes the interrupted channel;
// the second exits the process with status 130.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	ctx = h.Context()
//
//	go func() {
//	    <-h.Interrupted()
//	    // tell the user the run is winding down
//	}()
func NewHandler(parent context.Context) *Handler {
	return newHandlerWithExit(parent, func() { os.Exit(exitCodeInterrupt) })
}

// newHandlerWithExit is the injectable-exit constructor used by tests.
func newHandlerWithExit(parent context.Context, forceExit func()) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		forceExit:   forceExit,
		// Buffer of 1 ensures signal.Notify doesn't drop signals if handler is busy.
		// See: https://pkg.go.dev/os/signal#Notify
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context.
// Use this context for all operations that should be interruptible.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes when an interrupt signal is
// received. Use this to tell the user the run is finishing its current
// command instead of appearing to hang.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Stop cleans up the signal handler and stops listening for signals.
// Always call this when done to prevent resource leaks.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done) // Signal listen() to exit before closing sigChan
		h.cancel()
	})
}

// handleSignal processes the first received signal.
func (h *Handler) handleSignal() {
	h.once.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

// listen waits for signals and handles them. The first signal starts the
// graceful wind-down; any further signal means the user is done waiting.
func (h *Handler) listen() {
	for {
		select {
		case <-h.done:
			// Stop() was called - exit cleanly
			return
		case <-h.sigChan:
			select {
			case <-h.interrupted:
				// Already winding down: abandon the graceful path.
				h.forceExit()
			default:
				h.handleSignal()
			}
		}
	}
}
