package cli

import (
	"fmt"

	"github.com/terraincognita07/wellnest/internal/db"
)

type MigrateCmd struct {
	DBPath string `name:"db-path" help:"SQLite database file." env:"DB_PATH" default:"data/wellnest.db" type:"path"`
}

func (cmd *MigrateCmd) Run(ctx *Context) error {
	database, err := db.Open(cmd.DBPath, nil)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer sqlDB.Close()

	applied, err := db.Migrate(database)
	for _, name := range applied {
		fmt.Fprintf(ctx.Stdout, "applied %s\n", name)
	}
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(applied) == 0 {
		fmt.Fprintln(ctx.Stdout, "schema is up to date")
	}
	return nil
}
