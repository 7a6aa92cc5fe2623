// Package screen holds the two screens of the application as plain state
// machines, free of any drawing code. The desktop window and the terminal UI
// both drive the same Launch and Simulation values and only differ in how
// they paint them.
//
// Flow: Launch.Start moves to the Simulation screen. Simulation.Submit reads
// the five fields, runs the rocket model and either holds a chart or raises a
// modal error message. While the message is up the screen ignores edits and
// submits until Dismiss is called.
package screen
