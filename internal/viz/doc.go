// Package viz renders a live chase episode in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: steps the environment on a timer and draws both trails
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Start a new episode
//	Q     - Quit
package viz
