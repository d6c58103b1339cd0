// Package render draws the pen trace and gear overlay onto a [Surface].
//
// [Compositor] is the per-frame driver: on each tick it advances the
// kinematics engine (when playing), then redraws the entire trace and the
// optional overlay through the current view transform. The trace is
// re-stroked from the full point history every frame; there is no
// incremental cache.
//
// [Raster] is the gg-backed Surface used for live frames. Exports allocate
// their own Raster at the export resolution.
//
// Stroke widths are given in device pixels. Surfaces divide them by the
// world-to-pixel scale before stroking in world units so lines keep the
// same on-screen weight at every zoom level.
package render
