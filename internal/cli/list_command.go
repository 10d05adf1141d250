package cli

import (
	"context"
	"fmt"

	"taskify/internal/table"
	"taskify/internal/tui"
)

// ListOptions holds the presentation flags of the list command
type ListOptions struct {
	Filter      string
	SortColumn  string
	Descending  bool
	Page        int
	PageSize    int
	Interactive bool
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, opts ListOptions) error {
	if err := c.app.requireSession(ctx); err != nil {
		return err
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = c.app.config.Table.DefaultPageSize
	}

	controller := table.NewController(c.app.client, c.app.bus, pageSize)
	controller.Mount(ctx)
	defer controller.Unmount()

	controller.SetFilter(opts.Filter)
	if opts.SortColumn != "" {
		controller.ToggleSort(opts.SortColumn)
		if opts.Descending {
			controller.ToggleSort(opts.SortColumn)
		}
	}
	controller.SetPageIndex(opts.Page)

	if opts.Interactive {
		return tui.Run(controller)
	}

	return c.printPage(controller)
}

// printPage prints the current page of the derived view
func (c *ListCommand) printPage(controller *table.Controller) error {
	rows := controller.PageRows()
	view := controller.View()

	if len(rows) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("%-5s %-30s %-12s %-10s %-12s\n", "ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS")
	for _, row := range rows {
		fmt.Printf("%-5d %-30s %-12s %-10s %-12s\n",
			row.ID, truncate(row.Title, 30), row.Category, row.Priority, row.Status)
	}

	total := len(controller.FilteredRows())
	fmt.Printf("Page %d of %d (%d tasks)\n", view.PageIndex+1, controller.PageCount(), total)
	return nil
}

// truncate shortens a string to at most n runes with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
