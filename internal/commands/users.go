package commands

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tkorkmaz/prosed/internal/auth"
	"github.com/tkorkmaz/prosed/internal/models"
	"github.com/tkorkmaz/prosed/internal/settings"
)

var userFlags struct {
	role     string
	username string
	password string
	name     string
	employee string
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List configured users",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadUserStore()
		if store == nil {
			return
		}
		printUsers := func(label string, users []auth.User) {
			for _, u := range users {
				fmt.Printf("%-10s %-14s %-16s %s\n", label, u.Username, u.DisplayName, u.EmployeeID)
			}
		}
		printUsers("admin", store.Admins)
		printUsers("operator", store.Operators)
		printUsers("developer", store.Developers)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user to users.json",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadUserStore()
		if store == nil {
			return
		}
		if userFlags.username == "" {
			fmt.Println("Error: --username is required")
			return
		}
		if _, exists := store.FindUser(userFlags.username); exists {
			fmt.Printf("Error: user %q already exists\n", userFlags.username)
			return
		}

		user := auth.User{
			ID:          uuid.NewString(),
			Username:    userFlags.username,
			DisplayName: userFlags.name,
			EmployeeID:  userFlags.employee,
			Active:      true,
		}
		if user.DisplayName == "" {
			user.DisplayName = userFlags.username
		}

		switch userFlags.role {
		case "operator":
			user.Role = models.RoleOperator
			store.Operators = append(store.Operators, user)
		case "admin", "developer":
			if userFlags.password == "" {
				fmt.Printf("Error: %s users need a --password\n", userFlags.role)
				return
			}
			user.PasswordHash = auth.HashPassword(userFlags.password)
			if userFlags.role == "admin" {
				user.Role = models.RoleAdmin
				store.Admins = append(store.Admins, user)
			} else {
				user.Role = models.RoleDeveloper
				store.Developers = append(store.Developers, user)
			}
		default:
			fmt.Printf("Error: unknown role %q\n", userFlags.role)
			return
		}

		if err := store.Save(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Added %s user %q\n", userFlags.role, userFlags.username)
	},
}

func loadUserStore() *auth.Store {
	dir, err := settings.DefaultDir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil
	}
	return auth.Load(filepath.Join(dir, "users.json"))
}

func init() {
	usersAddCmd.Flags().StringVar(&userFlags.role, "role", "operator", "role: operator, admin or developer")
	usersAddCmd.Flags().StringVar(&userFlags.username, "username", "", "username")
	usersAddCmd.Flags().StringVar(&userFlags.password, "password", "", "password (admin/developer only)")
	usersAddCmd.Flags().StringVar(&userFlags.name, "name", "", "display name")
	usersAddCmd.Flags().StringVar(&userFlags.employee, "employee-id", "", "employee id")
	usersCmd.AddCommand(usersAddCmd)
}
