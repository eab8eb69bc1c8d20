package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	matchdomain "github.com/Black-And-White-Club/esportivo/app/modules/match/domain"
	"github.com/Black-And-White-Club/esportivo/app/modules/match/scoring"
	"github.com/urfave/cli/v2"
)

func (r *runner) matchesCommand() *cli.Command {
	return &cli.Command{
		Name:  "matches",
		Usage: "match pages, live scoring and admin tools",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "one match",
				ArgsUsage: "<match id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "match id")
					if err != nil {
						return err
					}
					m, err := r.app.Matches.Get(c.Context, id)
					if err != nil {
						return err
					}
					r.printMatch(m)
					return nil
				},
			},
			{
				Name:      "events",
				Usage:     "match timeline",
				ArgsUsage: "<match id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c.Args().Slice(), 0, "match id")
					if err != nil {
						return err
					}
					events, err := r.app.Matches.Events(c.Context, id)
					if err != nil {
						return err
					}
					r.printEvents(events)
					return nil
				},
			},
			{
				Name:      "board",
				Usage:     "live scoreboard derived from the timeline",
				ArgsUsage: "<match id>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "first-server", Usage: "team serving first (volleyball)"},
					&cli.StringFlag{Name: "home-lineup", Usage: "six player ids by position (volleyball)"},
					&cli.StringFlag{Name: "away-lineup", Usage: "six player ids by position (volleyball)"},
				},
				Action: r.board,
			},
			{
				Name:      "record",
				Usage:     "record a match event (admin)",
				ArgsUsage: "<match id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Required: true, Usage: "goal, point, foul, yellow_card, red_card, advantage, penalty, timeout, period_start, period_end, clock_pause, clock_resume"},
					&cli.Int64Flag{Name: "team"},
					&cli.Int64Flag{Name: "player"},
					&cli.IntFlag{Name: "period"},
					&cli.IntFlag{Name: "points"},
					&cli.StringFlag{Name: "note"},
				},
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					id, err := idArg(c.Args().Slice(), 0, "match id")
					if err != nil {
						return err
					}
					draft := matchdomain.EventDraft{
						Type:   matchdomain.EventType(c.String("type")),
						TeamID: c.Int64("team"),
						Period: c.Int("period"),
						Points: c.Int("points"),
						Note:   c.String("note"),
					}
					if c.IsSet("player") {
						p := c.Int64("player")
						draft.PlayerID = &p
					}
					events, err := r.app.Matches.RecordEvent(c.Context, id, draft)
					if err != nil {
						return err
					}
					r.printEvents(events)
					return nil
				},
			},
			{
				Name:      "undo",
				Usage:     "delete a match event (admin)",
				ArgsUsage: "<match id> <event id>",
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					matchID, err := idArg(c.Args().Slice(), 0, "match id")
					if err != nil {
						return err
					}
					eventID, err := idArg(c.Args().Slice(), 1, "event id")
					if err != nil {
						return err
					}
					events, err := r.app.Matches.DeleteEvent(c.Context, matchID, eventID)
					if err != nil {
						return err
					}
					r.printEvents(events)
					return nil
				},
			},
			{
				Name:      "status",
				Usage:     "change the match status (admin)",
				ArgsUsage: "<match id> <scheduled|live|finished|cancelled>",
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					id, err := idArg(c.Args().Slice(), 0, "match id")
					if err != nil {
						return err
					}
					m, err := r.app.Matches.UpdateStatus(c.Context, id, matchdomain.Status(c.Args().Get(1)))
					if err != nil {
						return err
					}
					r.printMatch(m)
					return nil
				},
			},
			{
				Name:      "schedule",
				Usage:     "create a fixture (admin)",
				ArgsUsage: "<championship id>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "home", Required: true},
					&cli.Int64Flag{Name: "away", Required: true},
					&cli.StringFlag{Name: "at", Required: true, Usage: `kickoff, e.g. "next saturday 4pm" or "amanhã às 19h"`},
					&cli.StringFlag{Name: "venue"},
				},
				Action: func(c *cli.Context) error {
					if err := r.requireSignIn(); err != nil {
						return err
					}
					id, err := idArg(c.Args().Slice(), 0, "championship id")
					if err != nil {
						return err
					}
					m, err := r.app.Matches.Schedule(c.Context, id, matchdomain.ScheduleDraft{
						HomeTeamID: c.Int64("home"),
						AwayTeamID: c.Int64("away"),
						Kickoff:    c.String("at"),
						Venue:      c.String("venue"),
					})
					if err != nil {
						return err
					}
					r.printMatch(m)
					return nil
				},
			},
		},
	}
}

func (r *runner) board(c *cli.Context) error {
	id, err := idArg(c.Args().Slice(), 0, "match id")
	if err != nil {
		return err
	}
	opts := scoring.Options{FirstServer: c.Int64("first-server")}
	if opts.HomeLineup, err = parseLineup(c.String("home-lineup")); err != nil {
		return err
	}
	if opts.AwayLineup, err = parseLineup(c.String("away-lineup")); err != nil {
		return err
	}

	m, err := r.app.Matches.Get(c.Context, id)
	if err != nil {
		return err
	}
	events, err := r.app.Matches.Events(c.Context, id)
	if err != nil {
		return err
	}
	b := scoring.Build(*m, events, time.Now(), opts)

	fmt.Fprintf(r.out, "%s %d x %d %s\n", m.HomeTeamName, b.Score.Home, b.Score.Away, m.AwayTeamName)
	fmt.Fprintf(r.out, "Período %d  %s", b.Clock.Period, b.Clock)
	if !b.Clock.Running {
		fmt.Fprint(r.out, " (parado)")
	}
	fmt.Fprintln(r.out)

	switch {
	case b.Volleyball != nil:
		v := b.Volleyball
		fmt.Fprintf(r.out, "Sets: %d x %d\n", v.HomeSets, v.AwaySets)
		for _, s := range v.Sets {
			fmt.Fprintf(r.out, "  Set %d: %d x %d\n", s.Number, s.Home, s.Away)
		}
		if v.Winner == 0 {
			fmt.Fprintf(r.out, "  Set %d: %d x %d\n", v.Current.Number, v.Current.Home, v.Current.Away)
			fmt.Fprintf(r.out, "Saque: %s\n", teamName(m, v.Serving))
		} else {
			fmt.Fprintf(r.out, "Vencedor: %s\n", teamName(m, v.Winner))
		}
	case b.Fouls != nil:
		f := b.Fouls
		period := b.Clock.Period
		fmt.Fprintf(r.out, "Faltas no período: %d x %d\n", f.TeamFouls[m.HomeTeamID][period], f.TeamFouls[m.AwayTeamID][period])
		for _, team := range []int64{m.HomeTeamID, m.AwayTeamID} {
			if f.InBonus(team, period) {
				fmt.Fprintf(r.out, "%s no limite de faltas\n", teamName(m, team))
			}
		}
		for _, p := range f.FouledOut {
			fmt.Fprintf(r.out, "Atleta %d excluído por faltas\n", p)
		}
	case b.Combat != nil:
		cb := b.Combat
		fmt.Fprintf(r.out, "Pontos %d x %d  Vantagens %d x %d  Punições %d x %d\n",
			cb.Home.Points, cb.Away.Points,
			cb.Home.Advantages, cb.Away.Advantages,
			cb.Home.Penalties, cb.Away.Penalties)
		if cb.Leader != 0 {
			fmt.Fprintf(r.out, "Vencendo: %s\n", teamName(m, cb.Leader))
		}
	}
	return nil
}

func parseLineup(v string) (scoring.Lineup, error) {
	var l scoring.Lineup
	if v == "" {
		return l, nil
	}
	parts := strings.Split(v, ",")
	if len(parts) != len(l) {
		return l, fmt.Errorf("lineup needs %d player ids, got %d", len(l), len(parts))
	}
	for i, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return l, fmt.Errorf("invalid player id %q", p)
		}
		l[i] = id
	}
	return l, nil
}

func teamName(m *matchdomain.Match, id int64) string {
	switch id {
	case m.HomeTeamID:
		return m.HomeTeamName
	case m.AwayTeamID:
		return m.AwayTeamName
	}
	return strconv.FormatInt(id, 10)
}

func (r *runner) printMatch(m *matchdomain.Match) {
	fmt.Fprintf(r.out, "#%d %s %d x %d %s\n", m.ID, m.HomeTeamName, m.HomeScore, m.AwayScore, m.AwayTeamName)
	fmt.Fprintf(r.out, "%s  %s  %s\n", m.Status, formatTime(m.ScheduledAt), m.Venue)
}

func (r *runner) printEvents(events []matchdomain.Event) {
	tw := newTable(r.out, "ID", "HORA", "PERÍODO", "LANCE", "EQUIPE", "ATLETA", "VALOR")
	for _, e := range events {
		player := "-"
		if e.PlayerID != nil {
			player = strconv.FormatInt(*e.PlayerID, 10)
		}
		row(tw, e.ID, e.OccurredAt.Local().Format("15:04:05"), e.Period, e.Type, e.TeamID, player, e.Value())
	}
	_ = tw.Flush()
}
