package domain

import "strings"

// ConditionSlot identifies one boolean entry in the condition vector.
type ConditionSlot int

// The five slots, in display order.
const (
	// SlotOrientation is true while the device faces the reference direction.
	SlotOrientation ConditionSlot = iota

	// SlotAmbient is declared but no source ever produces it.
	SlotAmbient

	// SlotMotion becomes true after the first qualifying shake of the session.
	SlotMotion

	// SlotDirectoryMatch is true when the target name exists in the directory.
	SlotDirectoryMatch

	// SlotPasswordMatch is true when the typed password equals the derived secret.
	SlotPasswordMatch
)

// SlotCount is the number of slots in a ConditionVector.
const SlotCount = 5

// AllSlots returns every slot in display order.
func AllSlots() []ConditionSlot {
	return []ConditionSlot{
		SlotOrientation,
		SlotAmbient,
		SlotMotion,
		SlotDirectoryMatch,
		SlotPasswordMatch,
	}
}

// IsValid returns true if the slot is one of the five known slots.
func (s ConditionSlot) IsValid() bool {
	return s >= SlotOrientation && s <= SlotPasswordMatch
}

// String returns the machine name of the slot.
func (s ConditionSlot) String() string {
	switch s {
	case SlotOrientation:
		return "orientation"
	case SlotAmbient:
		return "ambient"
	case SlotMotion:
		return "motion"
	case SlotDirectoryMatch:
		return "directory_match"
	case SlotPasswordMatch:
		return "password_match"
	default:
		return "unknown"
	}
}

// Description returns a human-readable label for the slot.
func (s ConditionSlot) Description() string {
	switch s {
	case SlotOrientation:
		return "Facing north"
	case SlotAmbient:
		return "Ambient noise"
	case SlotMotion:
		return "Device shaken"
	case SlotDirectoryMatch:
		return "Contact exists"
	case SlotPasswordMatch:
		return "Password correct"
	default:
		return unknownDescription
	}
}

// ParseConditionSlot converts a machine name back into a slot.
func ParseConditionSlot(name string) (ConditionSlot, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range AllSlots() {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// ConditionVector holds one boolean per slot. The zero value has every
// slot false, so a vector is always fully populated.
type ConditionVector [SlotCount]bool

// Get returns the value of a slot. Unknown slots read as false.
func (v ConditionVector) Get(slot ConditionSlot) bool {
	if !slot.IsValid() {
		return false
	}
	return v[slot]
}

// With returns a copy of the vector with slot set to value.
// Unknown slots leave the vector unchanged.
func (v ConditionVector) With(slot ConditionSlot, value bool) ConditionVector {
	if slot.IsValid() {
		v[slot] = value
	}
	return v
}

// Gate returns the logical AND of every slot.
func (v ConditionVector) Gate() bool {
	for _, ok := range v {
		if !ok {
			return false
		}
	}
	return true
}

// Map returns the vector keyed by slot machine name.
func (v ConditionVector) Map() map[string]bool {
	out := make(map[string]bool, SlotCount)
	for _, s := range AllSlots() {
		out[s.String()] = v[s]
	}
	return out
}

// Snapshot is what observers receive after every change.
type Snapshot struct {
	// SessionID identifies the session that produced the snapshot.
	SessionID string

	// Seq increases by one for every published snapshot in a session.
	Seq uint64

	// Vector is a copy of the condition vector at publish time.
	Vector ConditionVector

	// Gate is Vector.Gate() at publish time.
	Gate bool

	// Changed is the slot whose update produced this snapshot.
	// It is -1 for the initial snapshot.
	Changed ConditionSlot
}

// NoSlot marks a snapshot that was not produced by a slot update.
const NoSlot ConditionSlot = -1
