// Package viz renders vectors in the terminal.
//
//   - [RenderSlots]: one cell per allocated slot, live slots highlighted
//   - [Sparkline]: compact history of length or capacity
//   - [Playground]: interactive Bubble Tea program driving a live vector
//
// # Key Bindings
//
//	p - push a value        e - emplace a value
//	x - pop                 c - clear
//	r - reserve double      s - swap first and last
//	g - grow by resize      z - shrink by resize
//	a - assign 3 copies     i - checked access past the end
//	u - undo via snapshot   q - quit
package viz
