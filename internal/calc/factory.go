package calc

import (
	"fmt"
	"sort"
	"sync"
)

// registered holds calculators added by build-tagged files at init time.
var (
	registeredMu sync.Mutex
	registered   []Calculator
)

// Register adds c to every factory created afterwards by NewDefaultFactory.
func Register(c Calculator) {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	registered = append(registered, c)
}

// Factory is a registry of calculators keyed by function and algorithm name.
// It is safe for concurrent use.
type Factory struct {
	mu    sync.RWMutex
	calcs map[Function]map[string]Calculator
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{calcs: make(map[Function]map[string]Calculator)}
}

// NewDefaultFactory returns a factory holding every built-in algorithm.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	for _, c := range []Calculator{
		AckermannIterative{},
		AckermannRecursive{},
		FibonacciLinear{},
		FibonacciDoubling{},
		FibonacciRecursive{},
	} {
		f.Add(c)
	}
	registeredMu.Lock()
	for _, c := range registered {
		f.Add(c)
	}
	registeredMu.Unlock()
	return f
}

// Add registers c, replacing any calculator with the same function and name.
func (f *Factory) Add(c Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byName, ok := f.calcs[c.Function()]
	if !ok {
		byName = make(map[string]Calculator)
		f.calcs[c.Function()] = byName
	}
	byName[c.Name()] = c
}

// List returns the sorted algorithm names available for fn.
func (f *Factory) List(fn Function) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calcs[fn]))
	for name := range f.calcs[fn] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the calculator registered under fn and name.
func (f *Factory) Get(fn Function, name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.calcs[fn][name]
	if !ok {
		return nil, fmt.Errorf("unknown %s algorithm %q", fn, name)
	}
	return c, nil
}

// MustGet is Get for names known to be registered. It panics otherwise.
func (f *Factory) MustGet(fn Function, name string) Calculator {
	c, err := f.Get(fn, name)
	if err != nil {
		panic(err)
	}
	return c
}

// GetAll returns every calculator for fn, ordered by name.
func (f *Factory) GetAll(fn Function) []Calculator {
	names := f.List(fn)
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Calculator, 0, len(names))
	for _, name := range names {
		out = append(out, f.calcs[fn][name])
	}
	return out
}
