package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codecraft/backend/internal/session"
	"github.com/spf13/cobra"
)

var errAdminRequired = errors.New("admin login required (run: codecraft login <username>)")

// readPassword returns the --password flag, or the first line of stdin.
func readPassword(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}

func newLoginCmd(current func() *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			a := current()
			if err := a.session.SignInWithUsername(cmd.Context(), args[0], pw); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			_ = a.session.RefreshProfile(cmd.Context())
			printIdentity(cmd.OutOrStdout(), a.session)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	return cmd
}

func newSignupCmd(current func() *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			a := current()
			if err := a.session.SignUpWithUsername(cmd.Context(), args[0], pw); err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			_ = a.session.RefreshProfile(cmd.Context())
			printIdentity(cmd.OutOrStdout(), a.session)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	return cmd
}

func newLogoutCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current().session.SignOut(cmd.Context()); err != nil {
				// ローカル状態は既にクリア済み
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printIdentity(cmd.OutOrStdout(), current().session)
		},
	}
}

func printIdentity(w io.Writer, st *session.Store) {
	snap := st.Snapshot()
	switch snap.State {
	case session.Unauthenticated:
		fmt.Fprintln(w, "not signed in")
		return
	case session.AuthenticatedBypass:
		fmt.Fprintf(w, "%s (local admin)\n", snap.User.Email)
		return
	}
	role := "no profile"
	if snap.Profile != nil {
		role = snap.Profile.Role
	}
	fmt.Fprintf(w, "%s (%s)\n", snap.User.Email, role)
}

// requireAdmin fails unless the current session holds the admin role.
func requireAdmin(a *app) error {
	if !a.session.IsAdmin() {
		return errAdminRequired
	}
	return nil
}
