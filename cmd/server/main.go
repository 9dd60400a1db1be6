package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/appointly/booking-mcp/cmd/server/internal/commands"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool `help:"Enable debug mode."`
		Version kong.VersionFlag
		Server  commands.ServerCmd  `cmd:"" help:"Start the MCP server"`
		Migrate commands.MigrateCmd `cmd:"" help:"Run database migrations and exit"`
	}
)

func main() {
	// A missing .env file is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
