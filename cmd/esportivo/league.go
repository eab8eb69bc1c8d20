package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Black-And-White-Club/esportivo/app/modules/championship/export"
	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	rosterdomain "github.com/Black-And-White-Club/esportivo/app/modules/roster/domain"
	"github.com/urfave/cli/v2"
)

func (r *runner) championshipsCommand() *cli.Command {
	return &cli.Command{
		Name:    "championships",
		Aliases: []string{"champs"},
		Usage:   "championships of the selected club",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list championships",
				Action: func(c *cli.Context) error {
					champs, err := r.app.Championships.List(c.Context, r.selectedClubID())
					if err != nil {
						return err
					}
					tw := newTable(r.out, "ID", "CAMPEONATO", "ESPORTE", "TEMPORADA", "SITUAÇÃO")
					for _, ch := range champs {
						row(tw, ch.ID, ch.Name, ch.Sport, ch.Season, ch.Status)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "show",
				Usage:     "show one championship",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					ch, err := r.app.Championships.Get(c.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(r.out, "%s\n", ch.Name)
					fmt.Fprintf(r.out, "Esporte: %s\nTemporada: %s\nSituação: %s\n", ch.Sport, ch.Season, ch.Status)
					if ch.StartsAt != nil && ch.EndsAt != nil {
						fmt.Fprintf(r.out, "Período: %s a %s\n", ch.StartsAt.Format("02/01/2006"), ch.EndsAt.Format("02/01/2006"))
					}
					return nil
				},
			},
			{
				Name:      "standings",
				Usage:     "league table",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					rows, err := r.app.Championships.Standings(c.Context, id)
					if err != nil {
						return err
					}
					tw := newTable(r.out, "#", "EQUIPE", "P", "J", "V", "E", "D", "PRÓ", "CONTRA", "SALDO")
					for _, s := range rows {
						row(tw, s.Position, s.TeamName, s.Points, s.Played, s.Won, s.Drawn, s.Lost, s.ScoreFor, s.ScoreAgainst, s.Balance())
					}
					return tw.Flush()
				},
			},
			{
				Name:      "matches",
				Usage:     "fixtures and results",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					matches, err := r.app.Championships.Matches(c.Context, id)
					if err != nil {
						return err
					}
					tw := newTable(r.out, "ID", "DATA", "MANDANTE", "PLACAR", "VISITANTE", "SITUAÇÃO")
					for _, m := range matches {
						score := "x"
						if m.Status != matchdomain.StatusScheduled {
							score = fmt.Sprintf("%d x %d", m.HomeScore, m.AwayScore)
						}
						row(tw, m.ID, formatTime(m.ScheduledAt), m.HomeTeamName, score, m.AwayTeamName, m.Status)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "export",
				Usage:     "write standings and fixtures to an .xlsx file",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "destination file"},
				},
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					path := c.String("output")
					if path == "" {
						path = fmt.Sprintf("classificacao-%d.xlsx", id)
					}
					if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
						path += ".xlsx"
					}
					f, err := os.Create(path)
					if err != nil {
						return err
					}
					if err := r.app.Championships.ExportStandings(c.Context, f, id); err != nil {
						f.Close()
						os.Remove(path)
						return err
					}
					if err := f.Close(); err != nil {
						return err
					}
					fmt.Fprintf(r.out, "Planilha salva em %s\n", path)
					return nil
				},
			},
			{
				Name:      "chart",
				Usage:     "write a points-per-team bar chart to a .png file",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "destination file"},
				},
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					path := c.String("output")
					if path == "" {
						path = fmt.Sprintf("classificacao-%d.png", id)
					}
					if !strings.EqualFold(filepath.Ext(path), ".png") {
						path += ".png"
					}
					palette := export.DefaultPalette
					if club := r.session().SelectedClub(); club != nil && club.Theme != nil {
						palette = export.PaletteFor(club.Theme.PrimaryColor)
					}
					f, err := os.Create(path)
					if err != nil {
						return err
					}
					if err := r.app.Championships.ChartStandings(c.Context, f, id, palette); err != nil {
						f.Close()
						os.Remove(path)
						return err
					}
					if err := f.Close(); err != nil {
						return err
					}
					fmt.Fprintf(r.out, "Gráfico salvo em %s\n", path)
					return nil
				},
			},
		},
	}
}

func (r *runner) teamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "teams",
		Usage: "teams and rosters",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "teams of a championship",
				ArgsUsage: "<championship id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					teams, err := r.app.Roster.Teams(c.Context, id)
					if err != nil {
						return err
					}
					tw := newTable(r.out, "ID", "EQUIPE", "TÉCNICO", "ATLETAS")
					for _, t := range teams {
						row(tw, t.ID, t.Name, t.CoachName, t.PlayerCount)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "show",
				Usage:     "one team",
				ArgsUsage: "<team id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "team id")
					if err != nil {
						return err
					}
					t, err := r.app.Roster.Team(c.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(r.out, "%s\nTécnico: %s\nAtletas: %d\n", t.Name, t.CoachName, t.PlayerCount)
					return nil
				},
			},
			{
				Name:      "players",
				Usage:     "roster of a team",
				ArgsUsage: "<team id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "team id")
					if err != nil {
						return err
					}
					players, err := r.app.Roster.Players(c.Context, id)
					if err != nil {
						return err
					}
					r.printPlayers(players)
					return nil
				},
			},
			{
				Name:      "add-player",
				Usage:     "register an athlete (admin)",
				ArgsUsage: "<team id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.IntFlag{Name: "number"},
					&cli.StringFlag{Name: "position"},
					&cli.StringFlag{Name: "birth-date", Usage: "YYYY-MM-DD"},
				},
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					id, err := idArg(c.Args().Slice(), 0, "team id")
					if err != nil {
						return err
					}
					draft := rosterdomain.PlayerDraft{Name: c.String("name"), Position: c.String("position")}
					if c.IsSet("number") {
						n := c.Int("number")
						draft.Number = &n
					}
					if v := c.String("birth-date"); v != "" {
						draft.BirthDate = &v
					}
					players, err := r.app.Roster.AddPlayer(c.Context, id, draft)
					if err != nil {
						return err
					}
					r.printPlayers(players)
					return nil
				},
			},
			{
				Name:      "remove-player",
				Usage:     "remove an athlete (admin)",
				ArgsUsage: "<team id> <player id>",
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					teamID, err := idArg(c.Args().Slice(), 0, "team id")
					if err != nil {
						return err
					}
					playerID, err := idArg(c.Args().Slice(), 1, "player id")
					if err != nil {
						return err
					}
					players, err := r.app.Roster.RemovePlayer(c.Context, teamID, playerID)
					if err != nil {
						return err
					}
					r.printPlayers(players)
					return nil
				},
			},
		},
	}
}

func (r *runner) printPlayers(players []rosterdomain.Player) {
	tw := newTable(r.out, "ID", "Nº", "ATLETA", "POSIÇÃO")
	for _, p := range players {
		number := "-"
		if p.Number != nil {
			number = fmt.Sprint(*p.Number)
		}
		row(tw, p.ID, number, p.Name, p.Position)
	}
	_ = tw.Flush()
}
