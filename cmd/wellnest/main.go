package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/terraincognita07/wellnest/internal/cli"

	_ "time/tzdata"
)

type commandLine struct {
	Version kong.VersionFlag
	EnvDir  string `name:"env-dir" help:"Directory holding an optional .env file." type:"path" default:"."`

	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP API." default:"1"`
	Migrate cli.MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Token   cli.TokenCmd   `cmd:"" help:"Mint a bearer token for local use."`
	Secret  cli.SecretCmd  `cmd:"" help:"Print a random SECRET_KEY."`
}

func newParser(cmdLine *commandLine) (*kong.Kong, error) {
	return kong.New(cmdLine,
		kong.Name("wellnest"),
		kong.Description("Mood journal and habit tracker API"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)
}

func main() {
	var cmdLine commandLine
	parser, err := newParser(&cmdLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&cli.Context{EnvDir: cmdLine.EnvDir, Stdout: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
