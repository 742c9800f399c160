package commands

import (
	"fmt"
	"os"

	"spacia-portal/internal/models"

	"github.com/spf13/cobra"
)

func LoginCmd(env *Env) *cobra.Command {
	var creds models.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				creds.Password = os.Getenv("SPACIA_PASSWORD")
			}
			sess, err := env.Users.Login(cmd.Context(), creds)
			if err != nil {
				return userError(err)
			}
			if err := env.setCurrent(sess.ID); err != nil {
				return err
			}
			env.success("Logged in as %s until %s", sess.Username, sess.ExpiresAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password (or SPACIA_PASSWORD)")
	return cmd
}

func LogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.Current(cmd.Context())
			if err != nil {
				return err
			}
			if sess != nil {
				if err := env.Users.Logout(cmd.Context(), sess.ID); err != nil {
					return userError(err)
				}
			}
			if err := env.clearCurrent(); err != nil {
				return err
			}
			env.success("Logged out")
			return nil
		},
	}
}

func RegisterCmd(env *Env) *cobra.Command {
	var form models.RegistrationForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Password == "" {
				form.Password = os.Getenv("SPACIA_PASSWORD")
			}
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			if err := env.Users.Register(cmd.Context(), form); err != nil {
				return userError(err)
			}
			env.success("Registration successful. You can now log in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Firstname, "firstname", "", "first name")
	cmd.Flags().StringVar(&form.Lastname, "lastname", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password (or SPACIA_PASSWORD)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "defaults to --password")
	return cmd
}

func WhoamiCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.Current(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Fprintln(env.Out, "Not logged in")
				return nil
			}
			fmt.Fprintf(env.Out, "%s (session expires %s)\n", sess.Username, sess.ExpiresAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
