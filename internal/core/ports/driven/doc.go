// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Battery: Fresh charge reading for the derived password
//   - Directory: Named-entry existence check
//   - PermissionGate: Directory access permission
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the affected condition simply stays false:
//
//   - HeadingSource: Compass readings
//   - MotionSource: Accelerometer readings
//   - Observer: Snapshot subscribers
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driven
