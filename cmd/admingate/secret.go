package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/artpar/admingate/adapters/auth"
	"github.com/artpar/admingate/adapters/hasher"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Generate a session signing secret",
	Long: `Generate a random secret for auth.session_secret.

Example:
  admingate secret`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(auth.GenerateSecret())
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Hash an admin password",
	Long: `Read a password from stdin and print its bcrypt hash for use
in auth.accounts[].password_hash.

Example:
  admingate hash`,
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := hasher.NewBcrypt(0).Hash(string(password))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(string(hash))
	return nil
}
