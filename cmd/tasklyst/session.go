package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasklyst/backend/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if !a.sessions.Login(cmd.Context(), email, password) {
				return domain.NewError(domain.ErrCodeUnauthorized, "invalid email or password")
			}
			user := a.sessions.CurrentUser(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if !a.sessions.Register(cmd.Context(), name, email, password) {
				return domain.NewError(domain.ErrCodeConflict, "registration failed, email may already be taken")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered and logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sessions.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireUser(cmd.Context())
			if err != nil {
				return err
			}
			session := a.sessions.Session(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s), session expires %s\n",
				user.Name, user.Email, user.ID, session.ExpiresAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
