package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var version = "dev"

type CLI struct {
	Config  string `help:"Path to config file." default:"data/config.yml" env:"UKJOBS_CONFIG"`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Serve ServeCmd `cmd:"" help:"Run the HTTP API and the daily schedule."`
	Run   RunCmd   `cmd:"" help:"Execute one aggregation pass and exit."`
	Seed  SeedCmd  `cmd:"" help:"Seed the target company list and exit."`
}

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("ukjobs-engine"),
		kong.Description("UK skilled-jobs aggregation engine."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := kctx.Run(&Context{ConfigPath: cli.Config, Logger: logger}); err != nil {
		logger.Error().Err(err).Msg("fatal")
		os.Exit(1)
	}
}

// Context is handed to every subcommand.
type Context struct {
	ConfigPath string
	Logger     zerolog.Logger
}
