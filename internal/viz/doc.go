// Package viz provides the live terminal view of the spirograph.
//
// Every tick the compositor redraws the trace into an offscreen raster
// sized two pixels per column and four per row, which [Canvas] folds into
// Braille cells.
//
// # Key Bindings
//
//	Space  - Play/Pause
//	C      - Clear trace
//	E      - Export PNG (Shift+E adds the data panel)
//	T      - Cycle colour themes
//	P      - Next preset
//	G      - Show/hide gears
//	[ ]    - Slower/faster
//	+ -    - Zoom about the centre
//	Arrows - Pan
//	0      - Fit to view
//	?      - Toggle help
//	Q      - Quit
//
// The mouse wheel zooms about the pointer and a left drag pans.
package viz
