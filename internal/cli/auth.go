// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	pperrors "github.com/promptvita/promptpro/internal/errors"
)

type authOptions struct {
	name          string
	email         string
	passwordStdin bool
}

// =============================================================================
// PROMPTS
// =============================================================================

// prompter asks for missing form values. Passwords are read without echo
// on a terminal, or as lines from in otherwise.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  io.Reader
	secret func() (string, error)
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, stdin: in}
	p.secret = p.readSecret
	return p
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, RenderLabel(label+":"))
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) askSecret(label string) (string, error) {
	fmt.Fprint(p.out, RenderLabel(label+":"))
	s, err := p.secret()
	fmt.Fprintln(p.out)
	return s, err
}

func (p *prompter) readSecret() (string, error) {
	if f, ok := p.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// interactive reports whether values may be prompted for.
func interactive(cmd *cobra.Command, opts *authOptions) bool {
	return opts.passwordStdin || cmd.InOrStdin() != os.Stdin || IsTTY()
}

// =============================================================================
// LOGIN / SIGNUP
// =============================================================================

// NewLoginCmd creates the login command.
func NewLoginCmd(root *rootOptions) *cobra.Command {
	opts := &authOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your PromptPro account",
		Example: `  promptpro login
  promptpro login --email ada@example.com
  echo "$PASSWORD" | promptpro login --email ada@example.com --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive(cmd, opts) {
				return RequiresTTY("login")
			}
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			form := auth.LoginForm{Email: opts.email}
			var err error
			if form.Email == "" {
				if form.Email, err = p.ask("Email"); err != nil {
					return err
				}
			}
			if form.Password, err = p.askSecret("Password"); err != nil {
				return err
			}

			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			user, err := e.session.Login(cmd.Context(), form)
			if err != nil {
				return userError(err, e.cfg.API.BaseURL)
			}
			printSuccess(e.out, "Logged in as %s <%s>", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Account email")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

// NewSignupCmd creates the signup command.
func NewSignupCmd(root *rootOptions) *cobra.Command {
	opts := &authOptions{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a PromptPro account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive(cmd, opts) {
				return RequiresTTY("signup")
			}
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			form := auth.SignupForm{Name: opts.name, Email: opts.email}
			var err error
			if form.Name == "" {
				if form.Name, err = p.ask("Full Name"); err != nil {
					return err
				}
			}
			if form.Email == "" {
				if form.Email, err = p.ask("Email"); err != nil {
					return err
				}
			}
			if form.Password, err = p.askSecret("Password"); err != nil {
				return err
			}
			if opts.passwordStdin {
				form.ConfirmPassword = form.Password
			} else if form.ConfirmPassword, err = p.askSecret("Confirm Password"); err != nil {
				return err
			}

			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			user, err := e.session.Signup(cmd.Context(), form)
			if err != nil {
				return userError(err, e.cfg.API.BaseURL)
			}
			printSuccess(e.out, "Account created. Welcome, %s!", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Full name")
	cmd.Flags().StringVar(&opts.email, "email", "", "Account email")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

// =============================================================================
// LOGOUT / WHOAMI
// =============================================================================

// NewLogoutCmd creates the logout command.
func NewLogoutCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			if state, _ := e.session.Reload(); state != auth.StateAuthenticated {
				printWarning(e.out, "Not logged in")
				return nil
			}
			if err := e.session.Logout(cmd.Context()); err != nil {
				return pperrors.Wrap(pperrors.ErrStorageFailed, "could not clear the stored session", "", err)
			}
			printSuccess(e.out, "Logged out")
			return nil
		},
	}
}

type whoamiOptions struct {
	json bool
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd(root *rootOptions) *cobra.Command {
	opts := &whoamiOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored session and show the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			res := e.session.Restore(cmd.Context())
			if opts.json {
				var user *api.User
				if res.State == auth.StateAuthenticated {
					user = res.User
				}
				return NewJSONResponse("whoami", map[string]any{
					"authenticated": user != nil,
					"user":          user,
				}).Print(e.out)
			}

			if res.State != auth.StateAuthenticated {
				fmt.Fprintln(e.out, "anonymous")
				if res.Err != nil {
					fmt.Fprintln(e.out, dim("stored session discarded: "+res.Err.Error()))
				}
				return nil
			}
			u := res.User
			fmt.Fprintln(e.out, RenderField("Name", u.Name))
			fmt.Fprintln(e.out, RenderField("Email", u.Email))
			if t, ok := u.Created(); ok {
				fmt.Fprintln(e.out, RenderField("Member since", t.Format("January 2, 2006")))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	return cmd
}
