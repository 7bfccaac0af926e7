// Package domain defines the core business entities for secretpass.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConditionSlot: One of the five gated conditions
//   - ConditionVector: The fully populated five-slot boolean vector
//   - Snapshot: A published copy of the vector plus its gate
//   - HeadingSample, MotionSample, BatteryReading: Raw source readings
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
