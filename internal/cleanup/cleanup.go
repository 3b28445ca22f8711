// Package cleanup collects shutdown work registered while the viewer starts
// (closing the log file, saving the resume position) and runs it once on exit.
package cleanup

import (
	"errors"
	"sync"
)

var (
	mu    sync.Mutex
	hooks []func() error
)

// Register adds a hook. Hooks run in reverse registration order.
func Register(hook func() error) {
	if hook == nil {
		return
	}
	mu.Lock()
	hooks = append(hooks, hook)
	mu.Unlock()
}

// RunAll runs and forgets every registered hook. All hooks run even when some
// fail; their errors are joined.
func RunAll() error {
	mu.Lock()
	local := hooks
	hooks = nil
	mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := local[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
