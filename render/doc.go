// Package render is the GPU core of cellgrid: it turns a Grid into
// pixels with two render passes per frame.
//
// # Frame Pipeline
//
//	Grid ──► InstanceBuilder ──► cell pass ──► intermediate target
//	                                                  │
//	                              screen pass ◄───────┘
//	                                  │
//	                           output texture or surface
//
// The cell pass draws every cell as one instance of a shared unit quad
// in a single indexed instanced draw. The screen pass samples the
// intermediate target across a fullscreen quad, letterboxed to the
// output's aspect ratio.
//
// # Lifecycle
//
// Backend acquires the GPU device; Renderer owns all pipeline
// resources and sequences the per-frame work. Grid-size-dependent
// resources (the intermediate target, the palette texture, bind
// groups) are recreated exactly once when the grid dimensions change,
// never on a steady-state frame. Window resizes are deferred to the
// next frame boundary.
//
// # Thread Safety
//
// Renderer is NOT thread-safe. Use it from a single goroutine, or add
// external synchronization.
package render
