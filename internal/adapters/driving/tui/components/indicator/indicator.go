// Package indicator renders the condition vector as a checklist.
package indicator

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

const (
	markMet   = "✓"
	markUnmet = "✗"
)

// Panel shows one line per condition slot plus the gate.
type Panel struct {
	styles   *styles.Styles
	snapshot domain.Snapshot
	width    int
}

// NewPanel creates a panel showing an all-false vector.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{
		styles:   s,
		snapshot: domain.Snapshot{Changed: domain.NoSlot},
		width:    40,
	}
}

// SetSnapshot replaces the displayed snapshot. Older snapshots of the
// same session are ignored.
func (p *Panel) SetSnapshot(snap domain.Snapshot) {
	if snap.SessionID == p.snapshot.SessionID && snap.Seq < p.snapshot.Seq {
		return
	}
	p.snapshot = snap
}

// Snapshot returns the displayed snapshot.
func (p *Panel) Snapshot() domain.Snapshot {
	return p.snapshot
}

// SetWidth sets the panel width.
func (p *Panel) SetWidth(width int) {
	p.width = width
}

// View renders the checklist.
func (p *Panel) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Subtitle.Render("Conditions"))
	b.WriteString("\n")

	for _, slot := range domain.AllSlots() {
		b.WriteString("  ")
		b.WriteString(p.line(slot))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.snapshot.Gate {
		b.WriteString(p.styles.ConditionMet.Render("Gate open"))
	} else {
		met := 0
		for _, ok := range p.snapshot.Vector {
			if ok {
				met++
			}
		}
		b.WriteString(p.styles.Muted.Render(fmt.Sprintf("Gate closed (%d/%d)", met, domain.SlotCount)))
	}

	return b.String()
}

func (p *Panel) line(slot domain.ConditionSlot) string {
	label := slot.Description()
	if p.snapshot.Vector.Get(slot) {
		return p.styles.ConditionMet.Render(markMet + " " + label)
	}
	return p.styles.ConditionUnmet.Render(markUnmet + " " + label)
}
