// Package battery reads the charge level the derived password is built from.
package battery

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Battery = (*Sysfs)(nil)
	_ driven.Battery = Fixed(0)
)

// Fixed always reports the same percentage. Values outside [0, 100]
// report unavailable.
type Fixed int

// CurrentPercent returns the fixed reading.
func (f Fixed) CurrentPercent() domain.BatteryReading {
	return domain.NewBatteryReading(int(f))
}

// Sysfs reads /sys/class/power_supply on every call.
type Sysfs struct {
	root string
}

// NewSysfs creates a reader over root.
func NewSysfs(root string) *Sysfs {
	if root == "" {
		root = domain.DefaultAppSettings().Battery.SupplyPath
	}
	return &Sysfs{root: root}
}

// CurrentPercent returns the first battery's charge. It prefers the
// capacity attribute when it is within 0..100 and otherwise falls back to
// charge or energy ratios, truncated to a whole percent.
func (s *Sysfs) CurrentPercent() domain.BatteryReading {
	for _, dir := range s.batteries() {
		if pct, ok := readInt(filepath.Join(dir, "capacity")); ok && pct >= 0 && pct <= 100 {
			return domain.NewBatteryReading(pct)
		}
		for _, pair := range [][2]string{
			{"charge_now", "charge_full"},
			{"energy_now", "energy_full"},
		} {
			now, okNow := readInt(filepath.Join(dir, pair[0]))
			full, okFull := readInt(filepath.Join(dir, pair[1]))
			if okNow && okFull && full > 0 {
				return domain.NewBatteryReading(int(int64(now) * 100 / int64(full)))
			}
		}
	}
	return domain.BatteryReading{}
}

// batteries lists supplies whose type is Battery, in name order.
func (s *Sysfs) batteries() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		dir := filepath.Join(s.root, e.Name())
		b, err := os.ReadFile(filepath.Join(dir, "type"))
		if err != nil || strings.TrimSpace(string(b)) != "Battery" {
			continue
		}
		out = append(out, dir)
	}
	return out
}

func readInt(path string) (int, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, false
	}
	return n, true
}
