package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func TestIsReferenceDirection(t *testing.T) {
	tests := []struct {
		heading float64
		want    bool
	}{
		{0, true},
		{5, true},
		{10, true},
		{10.0001, false},
		{11, false},
		{180, false},
		{349, false},
		{349.9999, false},
		{350, true},
		{355, true},
		{360, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsReferenceDirection(tt.heading), "heading %v", tt.heading)
	}
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-5, 355},
		{-360, 0},
		{-1e-14, 0},
	}

	for _, tt := range tests {
		got, ok := NormalizeHeading(tt.in)
		require.True(t, ok)
		assert.InDelta(t, tt.want, got, 1e-9, "input %v", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestNormalizeHeading_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := NormalizeHeading(v)
		assert.False(t, ok)
	}
}

func heading(deg float64) domain.HeadingSample {
	return domain.HeadingSample{Degrees: deg, At: time.Unix(0, 0)}
}

func TestOrientationClassifier_EdgeTriggered(t *testing.T) {
	sink := &recordingSink{}
	c := NewOrientationClassifier(sink)

	c.Observe(heading(180)) // still false, nothing applied
	c.Observe(heading(5))
	c.Observe(heading(3))
	c.Observe(heading(355))
	c.Observe(heading(90))
	c.Observe(heading(100))

	assert.Equal(t, []appliedUpdate{
		{domain.SlotOrientation, true},
		{domain.SlotOrientation, false},
	}, sink.updates())
}

func TestOrientationClassifier_WrapsNegativeHeadings(t *testing.T) {
	sink := &recordingSink{}
	c := NewOrientationClassifier(sink)

	c.Observe(heading(-5))

	assert.True(t, sink.Snapshot().Vector.Get(domain.SlotOrientation))
}

func TestOrientationClassifier_DropsNaN(t *testing.T) {
	sink := &recordingSink{}
	c := NewOrientationClassifier(sink)

	c.Observe(heading(0))
	c.Observe(heading(math.NaN()))

	require.Len(t, sink.updates(), 1)
	assert.True(t, sink.Snapshot().Vector.Get(domain.SlotOrientation))
}
