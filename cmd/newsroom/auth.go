package main

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/newsroom/internal/render"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authUsername string
	resetToken   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and lift the guest limit",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.auth.Login(ctx, authEmail, authPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.auth.Register(ctx, authUsername, authEmail, authPassword)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", user.Username)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored login",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	}),
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset token",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		resp, err := a.auth.ForgotPassword(ctx, authEmail)
		if err != nil {
			return fmt.Errorf("password reset request failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		if resp.ResetToken != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset token: %s\n", resp.ResetToken)
		}
		return nil
	}),
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with a reset token",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.auth.ResetPassword(ctx, resetToken, authPassword); err != nil {
			return fmt.Errorf("password reset failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password updated, you can log in now")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user or the guest quota",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		snap := a.workspace.Snapshot()
		if user := a.auth.CurrentUser(); user != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Username, user.Email)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "guest  %s\n", render.GuestBadge(snap))
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd, forgotPasswordCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
		_ = c.MarkFlagRequired("email")
	}
	for _, c := range []*cobra.Command{loginCmd, registerCmd, resetPasswordCmd} {
		c.Flags().StringVarP(&authPassword, "password", "p", "", "Account password")
		_ = c.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "Display name")
	_ = registerCmd.MarkFlagRequired("username")
	resetPasswordCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from forgot-password")
	_ = resetPasswordCmd.MarkFlagRequired("token")
}
