package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/lavarun/game/engine"
	"github.com/wricardo/lavarun/game/service"
)

// runOutcome is what the run command reports for one level
type runOutcome struct {
	Level    string             `json:"level"`
	Session  string             `json:"session"`
	Ticks    int                `json:"ticks"`
	Status   engine.Status      `json:"status"`
	Finished bool               `json:"finished"`
	Reason   string             `json:"stopped_reason,omitempty"`
	Events   int                `json:"events"`
	State    *engine.LevelState `json:"state"`
}

func (a *app) runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "simulate a level headlessly and print its final state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "level to run (default level when empty)"},
			&cli.BoolFlag{Name: "all", Usage: "run every level in parallel"},
			&cli.IntFlag{Name: "ticks", Aliases: []string{"n"}, Value: 1000, Usage: "maximum number of ticks"},
			&cli.FloatFlag{Name: "dt", Usage: "seconds per tick (level tick_seconds when 0)"},
			&cli.StringFlag{Name: "steer", Usage: "player velocity: left, right, up, down, stop or dx,dy"},
			&cli.IntFlag{Name: "parallel", Value: 4, Usage: "levels simulated at once with --all"},
			jsonFlag(),
		},
		Action: a.run,
	}
}

func (a *app) run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") && cmd.String("level") != "" {
		return cli.Exit("--level and --all are mutually exclusive", 2)
	}

	ticks := cmd.Int("ticks")
	if ticks < 1 {
		return cli.Exit("--ticks must be positive", 2)
	}

	req := service.TickRequest{Steps: ticks, Dt: cmd.Float("dt")}
	if s := cmd.String("steer"); s != "" {
		direction, err := engine.ParseDirection(s)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		req.Steer = &direction
	}

	_, svc, err := a.services(cmd)
	if err != nil {
		return err
	}

	levels := []string{cmd.String("level")}
	if cmd.Bool("all") {
		infos, err := svc.ListConfigs(ctx)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			return cli.Exit("no levels found", 1)
		}
		levels = levels[:0]
		for _, info := range infos {
			levels = append(levels, info.ConfigID)
		}
	}

	outcomes := make([]*runOutcome, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cmd.Int("parallel")))
	for i, level := range levels {
		g.Go(func() error {
			outcome, err := a.simulate(gctx, svc, level, req)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		if len(outcomes) == 1 && !cmd.Bool("all") {
			return a.printJSON(outcomes[0])
		}
		return a.printJSON(outcomes)
	}
	for _, outcome := range outcomes {
		a.printOutcome(outcome)
	}
	return nil
}

// simulate plays one level in its own session and removes the session afterwards
func (a *app) simulate(ctx context.Context, svc service.GameService, level string, req service.TickRequest) (*runOutcome, error) {
	info, err := svc.CreateSession(ctx, level)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := svc.DeleteSession(context.Background(), info.ID); err != nil {
			a.logger.Warn("failed to delete session", zap.String("session", info.ID), zap.Error(err))
		}
	}()

	result, err := svc.Tick(ctx, info.ID, req)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", info.ConfigName, err)
	}
	if result.StoppedReason == "canceled" {
		return nil, fmt.Errorf("level %s: %w", info.ConfigName, ctx.Err())
	}

	a.logger.Info("level simulated",
		zap.String("level", info.ConfigName),
		zap.Int("ticks", result.StepsExecuted),
		zap.String("status", statusText(result.Status)),
	)

	return &runOutcome{
		Level:    info.ConfigName,
		Session:  info.ID,
		Ticks:    result.StepsExecuted,
		Status:   result.Status,
		Finished: result.Finished,
		Reason:   result.StoppedReason,
		Events:   len(result.Events),
		State:    result.LevelState,
	}, nil
}

func (a *app) printOutcome(o *runOutcome) {
	fmt.Fprintf(a.out, "\n=== %s ===\n", o.Level)
	fmt.Fprintf(a.out, "Status: %s after %d ticks", statusText(o.Status), o.Ticks)
	if o.Finished {
		fmt.Fprint(a.out, " (finished)")
	}
	fmt.Fprintf(a.out, "\nCoins left: %d\n", o.State.CoinsLeft)
	fmt.Fprintln(a.out, strings.Join(Render(o.State), "\n"))
}

func statusText(status engine.Status) string {
	if status == engine.StatusPlaying {
		return "playing"
	}
	return string(status)
}
