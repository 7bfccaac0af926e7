package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

// ErrPasswordMismatch is returned when the entered password is wrong.
var ErrPasswordMismatch = errors.New("password does not match")

var passwordHint bool

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Check a password against the battery-derived secret",
	Long: `Read a password without echo and report whether it matches right now.

The expected password is the configured prefix followed by the current
battery percentage, so the answer changes as the battery drains.`,
	Args: cobra.NoArgs,
	RunE: runPassword,
}

func init() {
	passwordCmd.Flags().BoolVar(&passwordHint, "hint", false, "print the currently expected password instead")
	rootCmd.AddCommand(passwordCmd)
}

func runPassword(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(PromptTerminal)
	if err != nil {
		return err
	}
	defer closeServices(svc)

	if passwordHint {
		rule, ok := svc.Session.PasswordRule()
		if !ok {
			return fmt.Errorf("battery level: %w", domain.ErrSourceUnavailable)
		}
		cmd.Println(rule)
		return nil
	}

	input, err := readPassword(cmd)
	if err != nil {
		return err
	}

	svc.Session.SubmitPassword(input)
	if !svc.Session.Snapshot().Vector.Get(domain.SlotPasswordMatch) {
		return ErrPasswordMismatch
	}
	cmd.Println("Password matches.")
	return nil
}

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
