package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func TestPanel_InitialViewAllUnmet(t *testing.T) {
	p := NewPanel(nil)

	view := p.View()

	for _, slot := range domain.AllSlots() {
		assert.Contains(t, view, markUnmet+" "+slot.Description())
	}
	assert.Contains(t, view, "Gate closed (0/5)")
}

func TestPanel_SetSnapshot(t *testing.T) {
	p := NewPanel(nil)
	v := domain.ConditionVector{}.With(domain.SlotMotion, true)

	p.SetSnapshot(domain.Snapshot{SessionID: "s", Seq: 2, Vector: v, Changed: domain.SlotMotion})

	view := p.View()
	assert.Contains(t, view, markMet+" "+domain.SlotMotion.Description())
	assert.Contains(t, view, "Gate closed (1/5)")
}

func TestPanel_IgnoresStaleSnapshot(t *testing.T) {
	p := NewPanel(nil)
	fresh := domain.ConditionVector{}.With(domain.SlotOrientation, true)

	p.SetSnapshot(domain.Snapshot{SessionID: "s", Seq: 5, Vector: fresh})
	p.SetSnapshot(domain.Snapshot{SessionID: "s", Seq: 4})

	assert.Equal(t, uint64(5), p.Snapshot().Seq)
	assert.True(t, p.Snapshot().Vector.Get(domain.SlotOrientation))
}

func TestPanel_GateOpen(t *testing.T) {
	p := NewPanel(nil)
	var v domain.ConditionVector
	for _, slot := range domain.AllSlots() {
		v = v.With(slot, true)
	}

	p.SetSnapshot(domain.Snapshot{SessionID: "s", Seq: 9, Vector: v, Gate: true})

	assert.Contains(t, p.View(), "Gate open")
}
