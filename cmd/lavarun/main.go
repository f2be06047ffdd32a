// Command lavarun loads lava-run levels and simulates them headlessly.
//
// Levels are read from a directory of JSON or YAML files. The list, validate
// and analyze commands inspect them; run plays one level, or all of them in
// parallel, for a fixed number of ticks and prints the outcome. convert
// rewrites a level under a new name, switching between JSON and YAML.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/lavarun/game/config"
	"github.com/wricardo/lavarun/game/service"
	"github.com/wricardo/lavarun/game/session"
	"github.com/wricardo/lavarun/internal/logging"
)

// Version information
const (
	Version = "0.3.0"
	AppName = "lavarun"
)

// app holds what the subcommands share once the root flags are parsed
type app struct {
	out    io.Writer
	logger *zap.Logger
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		code := 1
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		os.Exit(code)
	}
}

// newCommand builds the root command writing its reports to out
func newCommand(out io.Writer) *cli.Command {
	a := &app{out: out, logger: zap.NewNop()}

	return &cli.Command{
		Name:    AppName,
		Usage:   "load and simulate lava-run levels",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "levels-dir",
				Aliases: []string{"d"},
				Usage:   "directory containing level files",
				Value:   "levels",
				Sources: cli.EnvVars("LAVARUN_LEVELS_DIR"),
			},
			&cli.StringFlag{
				Name:    "default-level",
				Usage:   "level used when a command is not given one",
				Sources: cli.EnvVars("LAVARUN_DEFAULT_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				Sources: cli.EnvVars("LAVARUN_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "human-readable debug logging",
			},
		},
		Before: a.setup,
		// main owns the exit code
		ExitErrHandler: func(ctx context.Context, cmd *cli.Command, err error) {},
		After: func(ctx context.Context, cmd *cli.Command) error {
			_ = a.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			a.listCommand(),
			a.validateCommand(),
			a.analyzeCommand(),
			a.runCommand(),
			a.convertCommand(),
		},
	}
}

func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String("log-level")
	if cmd.Bool("debug") {
		level = "debug"
	}

	logger, err := logging.New(level, cmd.Bool("debug"))
	if err != nil {
		return ctx, err
	}
	a.logger = logger
	return ctx, nil
}

// services wires the level directory into a fresh game service
func (a *app) services(cmd *cli.Command) (*config.Manager, service.GameService, error) {
	configs, err := config.NewManager(cmd.String("levels-dir"), a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if name := cmd.String("default-level"); name != "" {
		if err := configs.SetDefault(name); err != nil {
			return nil, nil, fmt.Errorf("default level: %w", err)
		}
	}

	sessions := session.NewManager(a.logger)
	return configs, service.NewGameService(sessions, configs, a.logger), nil
}
