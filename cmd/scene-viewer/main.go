package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sudorandom/protein-scenes/pkg/config"
	"github.com/sudorandom/protein-scenes/pkg/sceneengine"
	"github.com/sudorandom/protein-scenes/pkg/utils"
)

var cli struct {
	Config       string `help:"YAML config file." type:"existingfile"`
	Dataset      string `help:"Dataset CSV path or URL (overrides config)."`
	Width        int    `help:"Internal rendering width (overrides config)."`
	Height       int    `help:"Internal rendering height (overrides config)."`
	WindowWidth  int    `help:"Initial window width." default:"960"`
	WindowHeight int    `help:"Initial window height." default:"600"`
	TPS          int    `name:"tps" help:"Ticks per second (engine updates)." default:"60"`
	CacheDir     string `help:"Keep downloaded datasets in this directory (overrides config)." type:"path"`
	CaptureDir   string `help:"Directory for frames captured with the S key." type:"path"`
	LogLevel     string `help:"Log level (debug, info, warn, error)."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("scene-viewer"),
		kong.Description("Interactive GDP per capita vs animal protein share scatterplot."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Dataset != "" {
		cfg.Dataset = cli.Dataset
	}
	if cli.Width > 0 {
		cfg.Width = cli.Width
	}
	if cli.Height > 0 {
		cfg.Height = cli.Height
	}
	if cli.CacheDir != "" {
		cfg.CacheDir = cli.CacheDir
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	ctx.FatalIfErrorf(cfg.Validate())
	utils.SetupLogging(nil, cfg.LogLevel)

	engine := sceneengine.NewEngine(cfg)
	engine.FrameCaptureDir = cli.CaptureDir

	log.Info().Str("dataset", cfg.Dataset).Msg("Loading dataset")
	engine.StartLoading(context.Background())

	ebiten.SetTPS(cli.TPS)
	ebiten.SetWindowSize(cli.WindowWidth, cli.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("GDP per Capita vs Animal Protein Share")
	if err := ebiten.RunGame(engine); err != nil {
		log.Fatal().Err(err).Msg("Viewer stopped")
	}
}
