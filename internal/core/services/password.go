package services

import (
	"strconv"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// DerivedPasswordValidator checks typed input against a password derived
// from the battery level at the moment of the check. A password that was
// right a moment ago can become wrong as the battery drains; it is only
// re-checked on the next edit.
type DerivedPasswordValidator struct {
	sink    driving.ConditionSink
	battery driven.Battery
	prefix  string
}

// NewDerivedPasswordValidator creates a validator. An empty prefix
// falls back to the default.
func NewDerivedPasswordValidator(
	sink driving.ConditionSink,
	battery driven.Battery,
	prefix string,
) *DerivedPasswordValidator {
	if prefix == "" {
		prefix = domain.DefaultAppSettings().Password.Prefix
	}
	return &DerivedPasswordValidator{
		sink:    sink,
		battery: battery,
		prefix:  prefix,
	}
}

// Expected returns the password valid right now. The bool is false when
// the battery reading is unavailable.
func (v *DerivedPasswordValidator) Expected() (string, bool) {
	reading := v.battery.CurrentPercent()
	if !reading.Available || reading.Percent < 0 || reading.Percent > 100 {
		return "", false
	}
	return v.prefix + strconv.Itoa(reading.Percent), true
}

// Check handles one edit event and applies the PasswordMatch slot.
func (v *DerivedPasswordValidator) Check(input string) bool {
	expected, ok := v.Expected()
	if !ok {
		logger.Debug("password: battery unavailable, %s is false", domain.SlotPasswordMatch)
		v.sink.Apply(domain.SlotPasswordMatch, false)
		return false
	}
	match := input == expected
	v.sink.Apply(domain.SlotPasswordMatch, match)
	return match
}
