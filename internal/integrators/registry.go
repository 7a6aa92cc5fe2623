package integrators

import (
	"fmt"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

var steppers = map[string]func() dynamo.Integrator{
	"euler": func() dynamo.Integrator { return NewEuler() },
	"rk4":   func() dynamo.Integrator { return NewRK4() },
}

// Get returns a fresh fixed-step stepper. Steppers hold scratch space, so
// callers get their own instance. RK45 is not listed; it is only driven
// through its adaptive step.
func Get(name string) (dynamo.Integrator, error) {
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}
