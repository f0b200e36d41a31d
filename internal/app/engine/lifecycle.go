package engine

import (
	"sync"
	"sync/atomic"

	"aihub/internal/app/errors"
)

// State is the position of an engine in its load/unload state machine.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateUnloading
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// Lifecycle guards the Unloaded/Loading/Loaded/Unloading transitions of
// one backend resource. Load calls serialize so two backends are never
// initialized concurrently; Unload waits for in-flight inference before
// releasing the resource; inference fails fast when the engine is not
// Loaded. The zero value is ready to use and starts Unloaded.
type Lifecycle struct {
	// transitionMu serializes Load and Unload against each other.
	transitionMu sync.Mutex

	// inferMu is held exclusively for every inference call and for the
	// resource release inside Unload. Local inference backends are not
	// assumed reentrant, so inference is serialized too.
	inferMu sync.Mutex

	state atomic.Int32
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// IsLoaded reports whether the engine is in the Loaded state.
func (l *Lifecycle) IsLoaded() bool {
	return l.State() == StateLoaded
}

// Load runs init under the transition lock. When the engine is already
// Loaded the call is a no-op. A concurrent Load blocks until the first
// one finishes and then observes its outcome. On init failure the state
// reverts to Unloaded and the error is surfaced wrapped in ErrLoadFailed.
func (l *Lifecycle) Load(init func() error) error {
	l.transitionMu.Lock()
	defer l.transitionMu.Unlock()

	if l.State() == StateLoaded {
		return nil
	}

	l.state.Store(int32(StateLoading))
	if err := init(); err != nil {
		l.state.Store(int32(StateUnloaded))
		return errors.WithCause(errors.ErrLoadFailed, err)
	}

	l.state.Store(int32(StateLoaded))
	return nil
}

// Unload releases the backend through release. It is unconditional and
// never fails; when already Unloaded it does nothing. Release waits for
// in-flight inference calls to drain before running.
func (l *Lifecycle) Unload(release func()) {
	l.transitionMu.Lock()
	defer l.transitionMu.Unlock()

	if l.State() == StateUnloaded {
		return
	}

	l.state.Store(int32(StateUnloading))

	l.inferMu.Lock()
	release()
	l.state.Store(int32(StateUnloaded))
	l.inferMu.Unlock()
}

// Infer runs op while the engine is Loaded. It fails fast with
// ErrModelNotLoaded when the engine is in any other state, including
// when an unload wins the race between the state check and op running.
func (l *Lifecycle) Infer(op func() error) error {
	if l.State() != StateLoaded {
		return errors.ErrModelNotLoaded
	}

	l.inferMu.Lock()
	defer l.inferMu.Unlock()

	// Re-check: an unload may have started while we waited.
	if l.State() != StateLoaded {
		return errors.ErrModelNotLoaded
	}
	return op()
}
