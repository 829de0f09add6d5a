// Package geometry holds the integer pixel geometry shared by the path-graph
// optimizer: points, raw polylines, slopes and the line-crossing arithmetic
// used by intersection resolution.
//
// Coordinates are integers because the editor captures them on a pixel grid.
// Floating point only appears transiently while computing slopes and crossing
// points, and every crossing is truncated back onto the grid.
package geometry
