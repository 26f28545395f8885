// Package tui contains the Bubble Tea program that draws engine frames.
//
// The engine runs on its own goroutine and talks to the program through a
// Backend, which implements engine.Drawer:
//   - Draw and Clear hand events to the program over an unbuffered channel,
//     so the engine never runs ahead of what is on screen.
//   - Model.Update turns tea.KeyMsg values into engine keys and queues them
//     on a small buffered channel that ReadKey drains.
//   - When the engine returns, the Backend records the exit and the program
//     quits.
//
// ctrl+c quits the program directly. Run then cancels the engine context,
// which makes the session end as an abort.
package tui
