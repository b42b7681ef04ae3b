// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the vector drawing context used to paint and
// hit-test editor overlays.
//
// A [Surface] follows the cairo model: a current path is built with
// MoveTo, LineTo, CurveTo and Arc, then consumed by Fill or Stroke or
// queried with InFill and InStroke. The predicates are evaluated on the
// same geometry that painting uses, so a caller drawing once in paint mode
// and once in query mode sees consistent results.
//
// # Implementations
//
//   - ImageSurface paints into an *image.RGBA with golang.org/x/image/vector
//   - NewHitSurface returns an ImageSurface without pixels, for queries only
package surface
