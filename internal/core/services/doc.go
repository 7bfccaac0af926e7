// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The condition pipeline is built from small producers that each own one
// slot of the condition vector:
//
//   - OrientationClassifier: compass heading near north
//   - MotionClassifier: a shake stronger than the configured threshold
//   - DirectoryLookup: the target name exists in the contact directory
//   - DerivedPasswordValidator: typed input equals prefix + battery percent
//
// Producers write only through a ConditionSink. ConditionAggregator is the
// sink: it serialises updates, recomputes the gate and publishes snapshots.
// Session wires producers, sensors and observers together for one login.
//
// Services are pure Go with no CGO.
package services
