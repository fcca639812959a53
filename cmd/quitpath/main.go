package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/terraincognita07/quitpath/internal/cli"
	"github.com/terraincognita07/quitpath/internal/config"
	"github.com/terraincognita07/quitpath/internal/logger"
)

var version = "v0.1.0"

var CLI struct {
	Version kong.VersionFlag
	Log     config.Logging `embed:"" prefix:"log-"`

	Serve    ServeCmd `cmd:"" help:"Run the web frontend." default:"1"`
	Sessions struct {
		Prune cli.PruneSessionsCmd `cmd:"" help:"Delete expired sessions."`
	} `cmd:"" help:"Manage stored sessions."`
	Secret cli.SecretCmd `cmd:"" help:"Print a random SECRET_KEY value."`
}

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("quitpath"),
		kong.Description("Smoking cessation web frontend"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := logger.Init(logger.Config{Level: CLI.Log.Level, File: CLI.Log.File}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "err", err)
		os.Exit(1)
	}
}
