package cli

import (
	"context"
	"fmt"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	counts, err := c.app.client.StatusCounts(ctx)
	if err != nil {
		return c.errorHandler.Handle("load statistics", err)
	}

	if len(counts) == 0 {
		fmt.Println("No tasks yet")
		return nil
	}

	total := 0
	for _, sc := range counts {
		fmt.Printf("%-12s %d\n", sc.Status, sc.Count)
		total += sc.Count
	}
	fmt.Printf("%-12s %d\n", "Total", total)
	return nil
}
