package solver

import (
	"fmt"
	"sort"

	"github.com/san-kum/rocketsim/internal/integrators"
)

const Default = "rk45"

type factory func(opts Options) (Solver, error)

var registry = map[string]factory{
	"rk45":  func(opts Options) (Solver, error) { return NewAdaptive(opts), nil },
	"ode":   func(opts Options) (Solver, error) { return NewExternal(opts.Substeps), nil },
	"rk4":   fixed("rk4"),
	"euler": fixed("euler"),
}

// fixed wraps one of the plain steppers in a Fixed driver.
func fixed(stepper string) factory {
	return func(opts Options) (Solver, error) {
		integ, err := integrators.Get(stepper)
		if err != nil {
			return nil, err
		}
		return NewFixed(integ, opts.Substeps), nil
	}
}

// New builds the named backend. An empty name selects Default.
func New(name string, opts Options) (Solver, error) {
	if name == "" {
		name = Default
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver %q (available: %v)", name, Names())
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("solver %s: %w", name, err)
	}
	return mk(opts)
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
