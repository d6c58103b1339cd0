// Package geom holds the small amount of planar geometry shared by the
// kinematics engine and both renderers: world-space vectors, bounding boxes
// and parametric ellipses.
//
// World space is y-down to match raster surfaces; angles grow clockwise on
// screen as a consequence.
package geom
