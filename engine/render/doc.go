// Package render is a small, predictable software 3D renderer.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Shading → Resolve.
//
// The renderer draws triangle meshes into a caller-provided Target with a depth
// buffer and flat shading under one point light. Frame adds ordered-grid
// supersampling on top: the scene is rasterized at an integer multiple of the
// output size and resolved with a CatmullRom filter.
//
// Buffers are reused between frames; the hot path does not allocate.
package render
