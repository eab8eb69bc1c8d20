package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func (r *runner) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in with e-mail and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "account e-mail"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "account password (or ESPORTIVO_PASSWORD)"},
		},
		Action: func(c *cli.Context) error {
			password := c.String("password")
			if password == "" {
				password = os.Getenv("ESPORTIVO_PASSWORD")
			}
			user, err := r.session().SignIn(c.Context, c.String("email"), password)
			if err != nil {
				return fmt.Errorf("%w: %w", errAlerted, err)
			}
			fmt.Fprintf(r.out, "Olá, %s!\n", user.Name)
			return nil
		},
	}
}

func (r *runner) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out, keeping the selected club",
		Action: func(c *cli.Context) error {
			r.session().SignOut(c.Context)
			fmt.Fprintln(r.out, "Sessão encerrada.")
			return nil
		},
	}
}

func (r *runner) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user and selected club",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Usage: "reload the profile from the server"},
		},
		Action: func(c *cli.Context) error {
			state := r.session().State()
			if !state.Authenticated {
				fmt.Fprintln(r.out, "Não autenticado.")
			} else {
				user := state.User
				if c.Bool("refresh") {
					fresh, err := r.app.Session.Auth.Me(c.Context)
					if err != nil {
						return err
					}
					user = fresh
				}
				role := "sócio"
				if user.IsAdmin {
					role = "administrador"
				}
				fmt.Fprintf(r.out, "%s <%s> (%s)\n", user.Name, user.Email, role)
			}
			if state.Club != nil {
				fmt.Fprintf(r.out, "Clube: %s (%s)\n", state.Club.Name, state.Club.Slug)
			}
			return nil
		},
	}
}
