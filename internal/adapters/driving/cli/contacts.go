package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage the contacts directory",
	Long: `Manage the local contacts directory that the directory_match condition
searches. Names are matched exactly and case-sensitively.`,
}

var contactsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsAdd,
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactsList,
}

var contactsRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove every contact with this exact name",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsRemove,
}

func init() {
	contactsCmd.AddCommand(contactsAddCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsRemoveCmd)
	rootCmd.AddCommand(contactsCmd)
}

func contactsServices() (*Services, error) {
	svc, err := buildServices(PromptTerminal)
	if err != nil {
		return nil, err
	}
	if svc.Contacts == nil {
		closeServices(svc)
		return nil, errors.New("contacts directory not configured")
	}
	return svc, nil
}

func runContactsAdd(cmd *cobra.Command, args []string) error {
	svc, err := contactsServices()
	if err != nil {
		return err
	}
	defer closeServices(svc)

	if err := svc.Contacts.Add(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}
	cmd.Printf("Added %q.\n", args[0])
	return nil
}

func runContactsList(cmd *cobra.Command, _ []string) error {
	svc, err := contactsServices()
	if err != nil {
		return err
	}
	defer closeServices(svc)

	names, err := svc.Contacts.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}
	if len(names) == 0 {
		cmd.Println("No contacts.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runContactsRemove(cmd *cobra.Command, args []string) error {
	svc, err := contactsServices()
	if err != nil {
		return err
	}
	defer closeServices(svc)

	err = svc.Contacts.Remove(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no contact named %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to remove contact: %w", err)
	}
	cmd.Printf("Removed %q.\n", args[0])
	return nil
}
