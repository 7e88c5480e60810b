// Command initdb creates the database file and applies the schema,
// then exits. Useful for provisioning before first start.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hearthapp/hearth/internal/storage/sqlite"
)

func main() {
	dbPath := flag.String("db", "./data/hearth.db", "path to the SQLite database file")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	if err := store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", *dbPath)
}
