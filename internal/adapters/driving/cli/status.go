package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// statusBuffer bounds how many unprinted snapshots are kept.
const statusBuffer = 256

var (
	statusWatch time.Duration
	statusJSON  bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the condition vector",
	Long: `Start a headless session and print its condition snapshots.

Without --watch the snapshots up to the first directory lookup are printed.
With --watch every change is printed until the duration elapses or Ctrl+C.
The contacts permission prompt, if needed, is asked on the terminal.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().DurationVar(&statusWatch, "watch", 0, "keep printing changes for this long")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print JSON lines")
	rootCmd.AddCommand(statusCmd)
}

// statusLine is the JSON form of a snapshot.
type statusLine struct {
	SessionID  string          `json:"session_id"`
	Seq        uint64          `json:"seq"`
	Gate       bool            `json:"gate"`
	Changed    string          `json:"changed,omitempty"`
	Conditions map[string]bool `json:"conditions"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(PromptTerminal)
	if err != nil {
		return err
	}
	defer closeServices(svc)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if statusWatch > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, statusWatch)
		defer cancel()
	}

	// Observers run under the aggregator lock; printing happens here instead.
	snapshots := make(chan domain.Snapshot, statusBuffer)
	unsubscribe := svc.Session.Subscribe(driven.ObserverFunc(func(s domain.Snapshot) {
		select {
		case snapshots <- s:
		default:
			logger.Warn("status: output is behind, dropped snapshot %d", s.Seq)
		}
	}))
	defer unsubscribe()

	if err := svc.Session.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer svc.Session.Close()

	out := cmd.OutOrStdout()
	if statusWatch <= 0 {
		if w, ok := svc.Session.(interface{ WaitDirectory() }); ok {
			w.WaitDirectory()
		}
		return drainSnapshots(out, snapshots)
	}

	for {
		select {
		case s := <-snapshots:
			if err := printSnapshot(out, s); err != nil {
				return err
			}
		case <-ctx.Done():
			return drainSnapshots(out, snapshots)
		}
	}
}

func drainSnapshots(out io.Writer, snapshots <-chan domain.Snapshot) error {
	for {
		select {
		case s := <-snapshots:
			if err := printSnapshot(out, s); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func printSnapshot(out io.Writer, s domain.Snapshot) error {
	if statusJSON {
		line := statusLine{
			SessionID:  s.SessionID,
			Seq:        s.Seq,
			Gate:       s.Gate,
			Conditions: s.Vector.Map(),
		}
		if s.Changed != domain.NoSlot {
			line.Changed = s.Changed.String()
		}
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err := fmt.Fprintln(out, formatSnapshot(s))
	return err
}

// formatSnapshot renders one line, e.g.
// "#3 gate=closed orientation=✓ ambient=✗ ... (directory_match)".
func formatSnapshot(s domain.Snapshot) string {
	var b strings.Builder
	gate := "closed"
	if s.Gate {
		gate = "open"
	}
	fmt.Fprintf(&b, "#%d gate=%s", s.Seq, gate)
	for _, slot := range domain.AllSlots() {
		mark := "✗"
		if s.Vector.Get(slot) {
			mark = "✓"
		}
		fmt.Fprintf(&b, " %s=%s", slot, mark)
	}
	if s.Changed != domain.NoSlot {
		fmt.Fprintf(&b, " (%s)", s.Changed)
	}
	return b.String()
}
