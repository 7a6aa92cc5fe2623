// Package rocket models a simplified vertical ascent of a rocket that burns
// propellant at a constant rate against linear drag and constant gravity.
//
// The state is (y, v, m): altitude in m, velocity in m/s and mass in kg.
//
//	dy/dt = v
//	dv/dt = g + dm_dt*v_ex/m - (b/m)*v
//	dm/dt = dm_dt
//
// Run is the single entry point used by every front end: it parses five text
// fields, integrates over 500 evenly spaced samples and returns a Result, or
// an error matching ErrInvalidInput or ErrIntegrationFailure.
package rocket
