// Package liquify implements local image warping driven by editable paths.
//
// A parameter set is a list of paths. Every path node carries a [Warp]: a
// circular area around the node, a strength vector and two hardness
// controls shaping the falloff from center to edge. Between nodes the
// warps are interpolated along the path, so a stroke drags the image along
// with it.
//
// # Processing
//
// Rendering a parameter set runs these stages:
//
//  1. map stored coordinates into the processing frame ([Transform])
//  2. expand paths into closely spaced warps ([InterpolatePaths])
//  3. synthesize one displacement stamp per warp ([BuildRoundStamp])
//  4. sum the stamps into a single field ([BuildDistortionMap])
//  5. resample the image through the field ([ApplyDistortionMap])
//
// [Processor] wires these together. The resampling stage can run on a
// compute device through a registered [Accelerator]:
//
//	import _ "github.com/gogpu/liquify/gpu"
//
// # Storage
//
// [Encode] and [Decode] convert paths to and from the versioned binary
// parameter format. Decoding recovers locally from corrupt records.
//
// # Editing
//
// Interactive editing lives in package edit.
package liquify
