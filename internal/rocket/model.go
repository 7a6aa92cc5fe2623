package rocket

import (
	"strconv"
	"strings"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// Physical constants. They never change at runtime.
const (
	Damping         = 1.0   // b, kg/s
	ExhaustVelocity = 100.0 // v_ex, m/s
	Gravity         = -9.81 // g, m/s^2
	BurnRate        = -0.1  // dm_dt, kg/s
)

// Field labels, in the order the five inputs are read.
var Fields = [5]string{
	"Initial altitude (m)",
	"Initial velocity (m/s)",
	"Initial mass (kg)",
	"Start time (s)",
	"End time (s)",
}

type Params struct {
	Altitude  float64
	Velocity  float64
	Mass      float64
	StartTime float64
	EndTime   float64
}

// ParseParams reads the five fields in Fields order. Surrounding white space
// is ignored. Decimal notation, exponents, digit separators, inf and nan are
// accepted; hex floats and anything else strconv.ParseFloat rejects are an
// InputError. Mass is not range checked.
func ParseParams(fields [5]string) (Params, error) {
	var vals [5]float64
	for i, text := range fields {
		v, err := parseNumber(text)
		if err != nil {
			return Params{}, &InputError{Field: Fields[i], Text: text}
		}
		vals[i] = v
	}
	return Params{
		Altitude:  vals[0],
		Velocity:  vals[1],
		Mass:      vals[2],
		StartTime: vals[3],
		EndTime:   vals[4],
	}, nil
}

func parseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	body := s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

func (p Params) State() dynamo.State {
	return dynamo.State{p.Altitude, p.Velocity, p.Mass}
}

// Model is the ascent ODE as a dynamo.System. A zero mass gives a non-finite
// derivative; it is left to the solver to report.
type Model struct{}

func (Model) StateDim() int { return 3 }

func (Model) Derive(x dynamo.State, t float64) dynamo.State {
	v, m := x[1], x[2]
	a := Gravity + BurnRate*ExhaustVelocity/m - (Damping/m)*v
	return dynamo.State{v, a, BurnRate}
}
