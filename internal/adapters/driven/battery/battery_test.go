package battery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func supply(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for k, v := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0600))
	}
}

func TestFixed(t *testing.T) {
	assert.Equal(t, domain.BatteryReading{Percent: 42, Available: true}, Fixed(42).CurrentPercent())
	assert.Equal(t, domain.BatteryReading{Percent: 0, Available: true}, Fixed(0).CurrentPercent())
	assert.False(t, Fixed(101).CurrentPercent().Available)
	assert.False(t, Fixed(-1).CurrentPercent().Available)
}

func TestSysfs_Capacity(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "AC", map[string]string{"type": "Mains", "capacity": "5"})
	supply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "73"})

	assert.Equal(t, domain.NewBatteryReading(73), NewSysfs(root).CurrentPercent())
}

func TestSysfs_ChargeRatio(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT1", map[string]string{
		"type":        "Battery",
		"charge_now":  "2500000",
		"charge_full": "5000000",
	})

	assert.Equal(t, domain.NewBatteryReading(50), NewSysfs(root).CurrentPercent())
}

func TestSysfs_EnergyRatio(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"energy_now":  "1",
		"energy_full": "3",
	})

	assert.Equal(t, domain.NewBatteryReading(33), NewSysfs(root).CurrentPercent())
}

func TestSysfs_RatioTruncates(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"charge_now":  "2",
		"charge_full": "3",
	})

	assert.Equal(t, domain.NewBatteryReading(66), NewSysfs(root).CurrentPercent())
}

func TestSysfs_OutOfRangeCapacityFallsBack(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"capacity":    "4100",
		"energy_now":  "41",
		"energy_full": "100",
	})

	assert.Equal(t, domain.NewBatteryReading(41), NewSysfs(root).CurrentPercent())
}

func TestSysfs_ReadsFreshEachCall(t *testing.T) {
	root := t.TempDir()
	supply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "42"})
	s := NewSysfs(root)
	require.Equal(t, 42, s.CurrentPercent().Percent)

	require.NoError(t, os.WriteFile(filepath.Join(root, "BAT0", "capacity"), []byte("41\n"), 0600))

	assert.Equal(t, 41, s.CurrentPercent().Percent)
}

func TestSysfs_Unavailable(t *testing.T) {
	tests := map[string]func(t *testing.T, root string){
		"no supplies": func(t *testing.T, root string) {},
		"no battery": func(t *testing.T, root string) {
			supply(t, root, "AC", map[string]string{"type": "Mains"})
		},
		"garbage capacity": func(t *testing.T, root string) {
			supply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "full"})
		},
		"out of range": func(t *testing.T, root string) {
			supply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "120"})
		},
	}

	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			setup(t, root)
			assert.False(t, NewSysfs(root).CurrentPercent().Available)
		})
	}

	assert.False(t, NewSysfs(filepath.Join(t.TempDir(), "missing")).CurrentPercent().Available)
}
