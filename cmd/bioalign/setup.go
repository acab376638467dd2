package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mandalnilabja/bioalign/internal/config"
	"github.com/mandalnilabja/bioalign/internal/storage"
	"github.com/spf13/cobra"
)

// errNoPassword is returned when setup needs a password but stdin is exhausted.
var errNoPassword = errors.New("no admin password configured: set ADMIN_PASSWORD or run interactively")

// ensureAdminPassword makes sure the store holds an admin password hash.
// ADMIN_PASSWORD is used when set; otherwise the user is prompted on in.
func ensureAdminPassword(store storage.Storage, in io.Reader, out io.Writer, params *storage.Argon2Params) error {
	hasPassword, err := store.HasAdminPassword()
	if err != nil {
		return fmt.Errorf("failed to check admin password: %w", err)
	}
	if hasPassword {
		return nil
	}

	if env := os.Getenv("ADMIN_PASSWORD"); env != "" {
		if !storage.IsValidAdminPassword(env) {
			return errors.New("ADMIN_PASSWORD must be alphanumeric with at least 8 characters")
		}
		return saveAdminPassword(store, env, params)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "╔════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║              FIRST-TIME SETUP REQUIRED                     ║")
	fmt.Fprintln(out, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "No admin password configured. Please set one now.")
	fmt.Fprintln(out, "This password protects the Admin API (access logs).")
	fmt.Fprintln(out)

	password, err := promptPassword(bufio.NewReader(in), out)
	if err != nil {
		return err
	}
	if err := saveAdminPassword(store, password, params); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✓ Admin password saved successfully!")
	fmt.Fprintln(out)
	return nil
}

// promptPassword asks for a password and its confirmation until both match.
func promptPassword(reader *bufio.Reader, out io.Writer) (string, error) {
	for {
		fmt.Fprint(out, "Enter admin password (alphanumeric, min 8 chars): ")
		password, err := readLine(reader)
		if err != nil {
			return "", err
		}

		if !storage.IsValidAdminPassword(password) {
			fmt.Fprintln(out, "❌ Password must be alphanumeric with at least 8 characters.")
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprint(out, "Confirm password: ")
		confirm, err := readLine(reader)
		if err != nil {
			return "", err
		}

		if password != confirm {
			fmt.Fprintln(out, "❌ Passwords do not match. Please try again.")
			fmt.Fprintln(out)
			continue
		}

		return password, nil
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", errNoPassword
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func saveAdminPassword(store storage.Storage, password string, params *storage.Argon2Params) error {
	hash, err := storage.HashPassword(password, params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := store.SetAdminPasswordHash(hash); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}

// newAdminPasswordCmd resets the admin password stored in the database.
func newAdminPasswordCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "admin-password",
		Short: "Set or reset the admin API password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.Overrides{ConfigPath: *configPath})
			if err != nil {
				return err
			}

			store, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			password, err := promptPassword(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := saveAdminPassword(store, password, storage.DefaultArgon2Params()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Admin password updated.")
			return nil
		},
	}
}
