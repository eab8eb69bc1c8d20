package main

import (
	"fmt"
	"strconv"

	sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"
	"github.com/urfave/cli/v2"
)

func (r *runner) clubsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clubs",
		Usage: "browse and select clubs",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list clubs",
				Action: func(c *cli.Context) error {
					clubs, err := r.app.Clubs.ListClubs(c.Context)
					if err != nil {
						return err
					}
					selected := r.selectedClubID()
					tw := newTable(r.out, "", "ID", "CLUBE", "SLUG")
					for _, club := range clubs {
						mark := ""
						if club.ID == selected {
							mark = "*"
						}
						row(tw, mark, club.ID, club.Name, club.Slug)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "select",
				Usage:     "select the club the app is scoped to",
				ArgsUsage: "<id|slug>",
				Action: func(c *cli.Context) error {
					profile, err := r.app.Clubs.GetClub(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					club := profile.Club
					if err := r.session().SelectClub(c.Context, &club); err != nil {
						return err
					}
					fmt.Fprintf(r.out, "Clube selecionado: %s\n", club.Name)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show a club page",
				ArgsUsage: "[id|slug]",
				Action: func(c *cli.Context) error {
					ref := c.Args().First()
					if ref == "" {
						ref = strconv.FormatInt(r.selectedClubID(), 10)
					}
					profile, err := r.app.Clubs.GetClub(c.Context, ref)
					if err != nil {
						return err
					}
					printClub(r, profile.Club)
					if profile.City != "" {
						fmt.Fprintf(r.out, "Cidade: %s\n", profile.City)
					}
					fmt.Fprintf(r.out, "Sócios: %d\n", profile.MemberCount)
					for _, sport := range profile.Sports {
						fmt.Fprintf(r.out, "  - %s\n", sport)
					}
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "clear the club selection",
				Action: func(c *cli.Context) error {
					if err := r.session().SelectClub(c.Context, nil); err != nil {
						return err
					}
					fmt.Fprintln(r.out, "Seleção de clube removida.")
					return nil
				},
			},
		},
	}
}

func printClub(r *runner, club sessiondomain.Club) {
	fmt.Fprintf(r.out, "%s (%s)\n", club.Name, club.Slug)
	if club.Theme != nil {
		fmt.Fprintf(r.out, "Cores: %s / %s\n", club.Theme.PrimaryColor, club.Theme.SecondaryColor)
	}
}
