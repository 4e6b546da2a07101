// Package fx builds and evaluates image filter-effect graphs behind
// validated, generation-checked handles.
//
// # Overview
//
// fx is a Pure Go filter-graph library in the GoGPU ecosystem. Effects
// are immutable graph nodes (offset, blur, bitmap placement, color
// filter, blend, chain) created through factory methods on a Registry
// and addressed by opaque Handle values. The Registry owns a slot
// arena with generation counters, so a released or mistyped handle is
// reported as an error instead of corrupting state.
//
// # Quick Start
//
//	import "github.com/gogpu/fx"
//
//	reg := fx.New()
//
//	// Blur the source by 8 pixels, then shift it right.
//	blur, _ := reg.NewBlurEffect(8, 8, 0, fx.EdgeClamp)
//	eff, _ := reg.NewOffsetEffect(24, 0, blur)
//
//	out, _ := reg.Apply(eff, src) // src, out: *fx.Pixmap
//	_ = reg.Release(eff)
//	_ = reg.Release(blur)
//
// # Handles and ownership
//
// Every factory returns a fresh non-zero Handle with an owning
// reference on the underlying node. Using an effect as an input of
// another factory call acquires an additional reference, so releasing
// the input handle never invalidates composed parents. Release each
// handle exactly once, directly or through the managed Effect wrapper.
//
// # Evaluation
//
// Apply evaluates a graph bottom-up on the CPU. An absent (zero)
// input inside the graph stands for the source image itself. Output
// dimensions always equal the source dimensions.
package fx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
