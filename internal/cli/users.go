package cli

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/mverhoef/authgate/internal/core/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts for authentication",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Prompt for password
		fmt.Print("Enter password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if len(password) == 0 {
			return fmt.Errorf("password must not be empty")
		}

		fmt.Print("Confirm password: ")
		confirm, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		// Goes through the pipeline so the password is hashed and
		// uniqueness is enforced the same way as over HTTP.
		if _, err := services.AuthService.Register(cmd.Context(), username, string(password)); err != nil {
			if errors.Is(err, service.ErrUsernameTaken) {
				return fmt.Errorf("user already exists: %s", username)
			}
			return fmt.Errorf("failed to add user: %w", err)
		}

		fmt.Printf("User added: %s\n", username)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tCREATED")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

func init() {
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}
