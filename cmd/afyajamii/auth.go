package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/session"
)

func loginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username is required")
			}
			if password == "" {
				var err error
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("password is required")
			}

			token, err := app.API.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if token == "" {
				// The response carried neither token field.
				return errors.New("Login failed: no token in response")
			}

			// A plain login response carries no account type; the
			// stored default is general.
			app.Sessions.Login(token, username, gateway.AccountGeneral)
			fmt.Printf("Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	return cmd
}

func signupCmd(app *App) *cobra.Command {
	var (
		email       string
		accountType string
		fullName    string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])

			at, err := gateway.ParseAccountType(accountType)
			if err != nil {
				return err
			}
			if username == "" || email == "" || fullName == "" {
				return errors.New("username, --email and --full-name are all required")
			}

			if password == "" {
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
				confirm, err := promptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if password != confirm {
					return errors.New("passwords do not match")
				}
			}
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}

			message, err := app.API.Signup(cmd.Context(), gateway.SignupInput{
				Username:    username,
				Email:       email,
				AccountType: at,
				FullName:    fullName,
				Password:    password,
			})
			if err != nil {
				return err
			}
			if message != "" {
				fmt.Println(message)
			}

			// Auto-login with the fresh credentials, keeping the chosen
			// account type.
			token, err := app.API.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("account created, but login failed: %w", err)
			}
			if token == "" {
				return errors.New("account created, but login returned no token")
			}
			app.Sessions.Login(token, username, at)
			fmt.Printf("Logged in as %s (%s)\n", username, at)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&accountType, "account-type", "", "account type: pregnant, postnatal or general")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Sessions.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := app.Sessions.Current()
			if !app.Sessions.IsAuthenticated() {
				return errors.New("not logged in")
			}

			fmt.Printf("Username:     %s\n", sess.Username)
			if sess.AccountType != "" {
				fmt.Printf("Account type: %s\n", sess.AccountType)
			}
			if claims, err := session.PeekClaims(sess.Token); err == nil && !claims.ExpiresAt.IsZero() {
				if claims.Expired(time.Now()) {
					fmt.Printf("Token:        expired %s\n", claims.ExpiresAt.Local().Format(time.RFC822))
				} else {
					fmt.Printf("Token:        valid until %s\n", claims.ExpiresAt.Local().Format(time.RFC822))
				}
			}
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
