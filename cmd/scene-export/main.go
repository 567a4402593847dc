package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/sudorandom/protein-scenes/pkg/chart"
	"github.com/sudorandom/protein-scenes/pkg/config"
	"github.com/sudorandom/protein-scenes/pkg/sources"
	"github.com/sudorandom/protein-scenes/pkg/svgexport"
	"github.com/sudorandom/protein-scenes/pkg/utils"
)

var cli struct {
	Config   string   `help:"YAML config file." type:"existingfile"`
	Dataset  string   `help:"Dataset CSV path or URL (overrides config)."`
	CacheDir string   `help:"Keep downloaded datasets in this directory (overrides config)." type:"path"`
	Out      string   `help:"Output directory." type:"path" default:"out"`
	Scene    []string `help:"Scenes to export (overview, high-income, low-income, 1-3, btn1-btn3). Defaults to all."`
	LogLevel string   `help:"Log level (debug, info, warn, error)."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("scene-export"),
		kong.Description("Write one SVG per scene of the GDP vs animal protein scatterplot."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Dataset != "" {
		cfg.Dataset = cli.Dataset
	}
	if cli.CacheDir != "" {
		cfg.CacheDir = cli.CacheDir
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	ctx.FatalIfErrorf(cfg.Validate())
	utils.SetupLogging(nil, cfg.LogLevel)

	scenes, err := parseScenes(cli.Scene)
	ctx.FatalIfErrorf(err)

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	ds, err := sources.LoadCached(loadCtx, cfg.Dataset, cfg.Columns, cfg.CacheDir)
	cancel()
	ctx.FatalIfErrorf(err)

	ctx.FatalIfErrorf(os.MkdirAll(cli.Out, 0o755))
	ctrl := chart.NewController(ds, cfg.Layout(), cfg.ChartOptions(), time.Now())
	for _, s := range scenes {
		ctrl.Select(s, time.Now())
		path := filepath.Join(cli.Out, s.String()+".svg")
		ctx.FatalIfErrorf(writeScene(path, ctrl))
		log.Info().Str("scene", s.String()).Int("marks", ctrl.Marks().Len()).Str("path", path).Msg("Wrote scene")
	}
}

func parseScenes(names []string) ([]chart.Scene, error) {
	if len(names) == 0 {
		return chart.Scenes, nil
	}
	scenes := make([]chart.Scene, 0, len(names))
	for _, n := range names {
		s, err := chart.ParseScene(n)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}

func writeScene(path string, ctrl *chart.Controller) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := svgexport.Write(f, ctrl); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
