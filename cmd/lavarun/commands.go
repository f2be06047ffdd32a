package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/lavarun/game/config"
	"github.com/wricardo/lavarun/internal/levelcheck"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print JSON instead of text"}
}

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list the levels in the levels directory",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, svc, err := a.services(cmd)
			if err != nil {
				return err
			}

			infos, err := svc.ListConfigs(ctx)
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				return a.printJSON(infos)
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tCOINS\tFIREBALLS\tCHECKSUM")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%s\n",
					info.ConfigID, info.Name, info.Width, info.Height, info.Coins, info.Fireballs, info.Checksum)
			}
			return w.Flush()
		},
	}
}

func (a *app) validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate level files",
		ArgsUsage: "[files...]",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				files, err = levelFiles(cmd.String("levels-dir"))
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				return cli.Exit("no level files found", 1)
			}

			results := make([]levelcheck.Result, 0, len(files))
			invalid := 0
			for _, file := range files {
				result := levelcheck.ValidateFile(file)
				if !result.Valid {
					invalid++
				}
				results = append(results, result)
			}

			if cmd.Bool("json") {
				if err := a.printJSON(results); err != nil {
					return err
				}
			} else {
				a.printValidation(results)
			}

			if invalid > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d levels are invalid", invalid, len(results)), 1)
			}
			return nil
		},
	}
}

func (a *app) printValidation(results []levelcheck.Result) {
	for _, result := range results {
		fmt.Fprintf(a.out, "\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Fprintln(a.out, "VALID")
			for _, note := range result.Notes {
				fmt.Fprintln(a.out, "  "+note)
			}
			continue
		}
		fmt.Fprintln(a.out, "INVALID")
		for _, err := range result.Errors {
			fmt.Fprintln(a.out, "  - "+err)
		}
	}
	fmt.Fprintf(a.out, "\n%s\n", strings.Repeat("=", 40))
}

func (a *app) analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "print static heuristics for every level",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configs, svc, err := a.services(cmd)
			if err != nil {
				return err
			}

			infos, err := svc.ListConfigs(ctx)
			if err != nil {
				return err
			}

			analyses := make([]levelcheck.Analysis, 0, len(infos))
			for _, info := range infos {
				level, err := configs.LoadConfig(info.Filename)
				if err != nil {
					return err
				}
				analyses = append(analyses, levelcheck.Analyze(level))
			}

			if cmd.Bool("json") {
				return a.printJSON(analyses)
			}

			for i, analysis := range analyses {
				fmt.Fprintf(a.out, "\n=== %s (%s) ===\n", infos[i].ConfigID, analysis.Name)
				fmt.Fprintf(a.out, "Grid: %d x %d\n", analysis.Width, analysis.Height)
				fmt.Fprintf(a.out, "Coins: %d\n", analysis.Coins)
				fmt.Fprintf(a.out, "Fireballs: %d\n", analysis.Fireballs)
				fmt.Fprintf(a.out, "Walls: %d, lava: %d\n", analysis.WallCells, analysis.LavaCells)
				if analysis.Player == nil {
					fmt.Fprintln(a.out, "WARNING: no player")
					continue
				}
				fmt.Fprintf(a.out, "Player: %s\n", analysis.Player)
				if len(analysis.UnreachableCoins) > 0 {
					fmt.Fprintf(a.out, "WARNING: %d coins unreachable from the player\n", len(analysis.UnreachableCoins))
					for _, coin := range analysis.UnreachableCoins {
						fmt.Fprintf(a.out, "   Unreachable coin: %s\n", coin)
					}
				} else {
					fmt.Fprintln(a.out, "All coins reachable")
				}
			}
			return nil
		},
	}
}

func (a *app) convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "save a level under a new file name; the extension picks JSON or YAML",
		ArgsUsage: "<level> <target>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("convert needs a level and a target file name", 2)
			}
			source, target := cmd.Args().Get(0), cmd.Args().Get(1)

			configs, _, err := a.services(cmd)
			if err != nil {
				return err
			}

			level, err := configs.LoadConfig(source)
			if err != nil {
				return err
			}
			if err := configs.SaveConfig(target, level); err != nil {
				if errors.Is(err, config.ErrInvalidConfig) {
					return cli.Exit(err.Error(), 2)
				}
				return err
			}

			fmt.Fprintf(a.out, "%s -> %s\n", source, target)
			return nil
		},
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// levelFiles lists the JSON and YAML files directly inside dir
func levelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
