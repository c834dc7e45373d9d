// Package carve implements silhouette-based voxel carving: it samples a world
// bounding box into a cubic lattice, projects every sample through every
// calibrated camera, and counts the views whose silhouette mask contains the
// projection. The accumulated occupancy field is handed to the exporters for
// downstream isosurfacing.
package carve

import "errors"

// Structural configuration errors. These abort a run before any carving work
// starts; no partial results are produced.
var (
	// ErrInvalidConfig marks a malformed sampling region or resolution.
	ErrInvalidConfig = errors.New("invalid carve configuration")

	// ErrConfigMismatch marks misaligned inputs: camera and mask counts
	// differ, or either list is empty. Index alignment between the two lists
	// is load-bearing, so this is validated rather than assumed.
	ErrConfigMismatch = errors.New("camera/mask configuration mismatch")

	// ErrIndexOutOfRange marks an out-of-bounds grid access. This is a
	// programming-error class fault, not a recoverable runtime condition.
	ErrIndexOutOfRange = errors.New("grid index out of range")
)
