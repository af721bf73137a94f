// Package marquee implements a scrolling text marquee driven by typed commands.
//
// # Actors
//
// A Session runs three goroutines over one shared State:
//
//   - Reader scans input lines, trims them, drops blanks, and pushes them onto a Queue.
//   - Interpreter drains the Queue one line at a time and mutates the State.
//   - Engine advances the scroll position once per tick and publishes a frame.
//
// Renderers read the State through Snapshot and wait on Changed for repaints.
// The Engine asks the renderer for the display width through a WidthFunc and
// knows nothing about rows, colors, or borders.
//
// # Scrolling
//
// The visible frame is a circular window of width cells over the virtual
// buffer text + width blanks, so the text scrolls fully off the viewport
// before it reappears. The position advances by one cell per tick and wraps
// modulo the virtual buffer length.
//
// # Shutdown
//
// State.Stop clears the keep-running flag and closes Done. Every actor checks
// the flag at the top of its loop and exits within one tick or poll interval.
package marquee
