package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"restaurant-floor-backend/internal/db"
	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
	"restaurant-floor-backend/internal/store"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stored floor, one line per table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.New(os.Stderr, "floord ", log.LstdFlags)
		cfg, err := loadConfig(logger)
		if err != nil {
			return err
		}
		gormDB, err := db.Init(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		state, found, err := store.NewGormStore(gormDB, cfg.Database.SnapshotKey).LoadSnapshot(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load floor snapshot: %w", err)
		}
		if !found {
			color.Yellow("no floor stored under key %q", cfg.Database.SnapshotKey)
			return nil
		}
		dump(cmd.OutOrStdout(), state)
		return nil
	},
}

var statusColor = map[model.TableStatus]*color.Color{
	model.StatusFree:     color.New(color.FgGreen),
	model.StatusOccupied: color.New(color.FgRed, color.Bold),
	model.StatusClosed:   color.New(color.FgHiBlack),
}

// dump writes the tables grouped by zone, followed by totals.
func dump(w io.Writer, s floor.State) {
	for _, z := range model.Zones {
		tables := s.TablesInZone(z.ID)
		if len(tables) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d tables, %d walls)\n", z.Name, len(tables), len(s.WallsInZone(z.ID)))
		for _, t := range tables {
			line := fmt.Sprintf("  #%-3d %-8s %-6s guests=%d", t.ID, t.Status, t.Size, t.Guests)
			if o, _, ok := t.OpenOrder(); ok {
				line += fmt.Sprintf(" open order #%d total=%d", o.ID, o.TotalAmount)
			}
			c, ok := statusColor[t.Status]
			if !ok {
				c = color.New(color.Reset)
			}
			c.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "%d menu items, %d completed orders\n", len(s.MenuItems), len(s.Orders))
}
