package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/agrismart/internal/cli/formatter"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/i18n"
	"github.com/alexanderramin/agrismart/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const defaultCountry = "India"

// registerInput backs both the register flags and the register form.
type registerInput struct {
	domain.UserProfile
	Password string
}

func (in *registerInput) missingRequired() bool {
	return in.Validate() != nil || in.Password == ""
}

func newRegisterCmd(app *App) *cobra.Command {
	var in registerInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a farmer account and log in",
		Long: `Create a farmer account. The profile location personalizes every
assistant. On a terminal, missing fields are asked for in a form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			if in.missingRequired() && app.interactive() {
				if err := registerForm(&in).Run(); err != nil {
					return err
				}
			}
			if in.Password == "" {
				return fmt.Errorf("--password is required")
			}

			profile, err := app.Accounts.Register(cmd.Context(), in.UserProfile, in.Password)
			if err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return fmt.Errorf("a user with this mobile number or email already exists")
				}
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.StyleGreen.Render("✔ "+i18n.Welcome(lang, profile.Name)))
			fmt.Fprintln(out, formatter.FormatProfile(profile))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "full name")
	f.StringVar(&in.Email, "email", "", "email (optional)")
	f.StringVar(&in.Mobile, "mobile", "", "mobile number")
	f.StringVar(&in.Country, "country", defaultCountry, "country")
	f.StringVar(&in.State, "state", "", "state")
	f.StringVar(&in.District, "district", "", "district")
	f.StringVar(&in.Tashil, "tashil", "", "tashil (sub-district)")
	f.StringVar(&in.Password, "password", "", "password")
	return cmd
}

func registerForm(in *registerInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full Name").Value(&in.Name).Validate(required("name")),
			huh.NewInput().Title("Email").Description("Optional").Value(&in.Email),
			huh.NewInput().Title("Mobile Number").Value(&in.Mobile).Validate(required("mobile number")),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password).Validate(required("password")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Country").Value(&in.Country).Validate(required("country")),
			huh.NewInput().Title("State").Value(&in.State).Validate(required("state")),
			huh.NewInput().Title("District").Value(&in.District).Validate(required("district")),
			huh.NewInput().Title("Tashil").Value(&in.Tashil).Validate(required("tashil")),
		),
	).WithTheme(agriHuhTheme()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var mobile, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with mobile number and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := languageFlag(cmd.Flags())
			if err != nil {
				return err
			}
			if (mobile == "" || password == "") && app.interactive() {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Mobile Number").Value(&mobile).Validate(required("mobile number")),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
				)).WithTheme(agriHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if mobile == "" {
				return fmt.Errorf("--mobile is required")
			}

			profile, err := app.Accounts.Login(cmd.Context(), mobile, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔ "+i18n.Welcome(lang, profile.Name)))
			return nil
		},
	}
	cmd.Flags().StringVar(&mobile, "mobile", "", "mobile number")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and end any open chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p, err := app.Accounts.Current(cmd.Context()); err == nil {
				app.Chat.End(p.Mobile)
			}
			if err := app.Accounts.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Logged out."))
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}
