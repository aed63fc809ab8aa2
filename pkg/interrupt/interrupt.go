// pkg/interrupt/interrupt.go
//
// Cooperative cancellation for destructive file operations. One owned
// controller per run: a once-only atomic flag polled by every loop,
// plus emergency removal of the in-progress temp artifact when a
// termination signal arrives.

package interrupt

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	cerr "github.com/cockroachdb/errors"
)

// ErrInterrupted is the distinct terminal outcome for cooperative
// cancellation. It is not a failure: the original file is intact and
// no temp artifact remains.
var ErrInterrupted = cerr.New("operation interrupted")

// Controller carries the cancellation flag and the currently-known
// temp artifact path. The flag and the path are the only state shared
// with the signal-watcher goroutine; both are accessed atomically.
type Controller struct {
	flag     atomic.Bool
	tempPath atomic.Value // string

	sigCh    chan os.Signal
	stopOnce sync.Once
}

// NewController installs a handler for SIGINT, SIGTERM and SIGHUP and
// starts watching. Callers must Stop() the controller when the run
// completes normally.
func NewController() *Controller {
	c := &Controller{sigCh: make(chan os.Signal, 2)}
	c.tempPath.Store("")
	signal.Notify(c.sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go c.watch()
	return c
}

// Interrupted reports whether cancellation was requested. Loop bodies
// poll this at the top of every iteration and around blocking I/O.
func (c *Controller) Interrupted() bool {
	return c.flag.Load()
}

// Err returns ErrInterrupted once cancellation was requested, nil
// otherwise, so poll sites stay one-liners.
func (c *Controller) Err() error {
	if c.flag.Load() {
		return ErrInterrupted
	}
	return nil
}

// Trip requests cancellation without a signal. First writer wins;
// subsequent calls are no-ops.
func (c *Controller) Trip() {
	c.flag.CompareAndSwap(false, true)
}

// RegisterTemp records the temp artifact the emergency cleanup must
// remove. An empty path clears the registration.
func (c *Controller) RegisterTemp(path string) {
	c.tempPath.Store(path)
}

// ClearTemp unregisters the temp artifact, e.g. after it was renamed
// into place or must survive for operator inspection.
func (c *Controller) ClearTemp() {
	c.tempPath.Store("")
}

// Stop uninstalls the signal handler. Safe to call more than once.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		signal.Stop(c.sigCh)
		close(c.sigCh)
	})
}

// watch handles the first termination signal: set the flag, remove the
// registered temp artifact, then restore the default disposition and
// re-deliver the signal so the parent observes a genuine
// signal-termination status. It never returns to normal control flow.
func (c *Controller) watch() {
	sig, ok := <-c.sigCh
	if !ok {
		return
	}
	c.flag.CompareAndSwap(false, true)

	if p, _ := c.tempPath.Load().(string); p != "" {
		_ = os.Remove(p)
	}

	signal.Reset(sig)
	if s, isSyscall := sig.(syscall.Signal); isSyscall {
		_ = syscall.Kill(syscall.Getpid(), s)
		os.Exit(128 + int(s))
	}
	os.Exit(1)
}
