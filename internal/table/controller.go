// Package table implements the task collection controller: it fetches the
// collection, derives a filtered/sorted/paginated view, performs mutations,
// and republishes the invalidation signal for mutations whose effect it did
// not apply locally.
package table

import (
	"context"
	"fmt"
	"sync"

	"taskify/internal/api"
	"taskify/internal/bus"
	"taskify/internal/config"
	"taskify/internal/domain"
	"taskify/internal/logging"
)

// Controller presents and mutates the task collection for one mounted view.
// The in-memory rows are replaced wholesale on every fetch; there is no
// incremental merge.
type Controller struct {
	client api.Client
	bus    *bus.Bus

	mu             sync.Mutex
	mounted        bool
	initialLoading bool
	rows           []*domain.Task
	view           ViewState
	mountCtx       context.Context
	sub            *bus.Subscription

	// fetchGen tags each issued fetch; only the response matching the
	// latest issued request is applied, so overlapping fetches resolve
	// deterministically instead of last-to-resolve-wins.
	fetchGen uint64
}

// NewController creates an unmounted controller with the given default
// page size.
func NewController(client api.Client, b *bus.Bus, pageSize int) *Controller {
	return &Controller{
		client: client,
		bus:    b,
		view: ViewState{
			PageSize: pageSize,
		},
	}
}

// Mount performs the initial fetch and subscribes to the invalidation
// signal. The provided context bounds the mount fetch and every
// bus-triggered refresh for the lifetime of the mount.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.initialLoading = true
	c.mountCtx = ctx
	c.mu.Unlock()

	c.sub = c.bus.Subscribe(bus.TasksChanged, func(bus.Signal) {
		c.Refresh()
	})

	c.fetch(ctx, true)
}

// Unmount unsubscribes from the bus. A fetch still in flight when the
// controller unmounts discards its result on resolution.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	c.mu.Unlock()

	c.sub.Unsubscribe()
}

// Refresh issues a full list request, replacing the rows wholesale on
// success. No loading indicator is shown for refreshes.
func (c *Controller) Refresh() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	ctx := c.mountCtx
	c.mu.Unlock()

	c.fetch(ctx, false)
}

// fetch performs one list request tagged with a generation token
func (c *Controller) fetch(ctx context.Context, initial bool) {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	c.mu.Unlock()

	rows, err := c.client.ListTasks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if initial {
		c.initialLoading = false
	}
	if !c.mounted {
		// Resolved after unmount; discard rather than apply to removed state.
		return
	}
	if gen != c.fetchGen {
		logging.Debugf("table: discarding stale fetch (gen %d < %d)\n", gen, c.fetchGen)
		return
	}
	if err != nil {
		logging.Errorf("table: list fetch failed: %v\n", err)
		return
	}

	c.rows = rows
}

// Loading reports whether the initial mount fetch is still in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialLoading
}

// Rows returns the raw fetched rows in server order
func (c *Controller) Rows() []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}

// View returns the current presentation state
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// derived recomputes the filtered and sorted rows. Never stored; callers
// always see a projection of the current raw rows.
func (c *Controller) derived() []*domain.Task {
	return SortRows(FilterRows(c.rows, c.view.FilterText), c.view.Sort)
}

// FilteredRows returns the rows matching the current filter, sorted
func (c *Controller) FilteredRows() []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.derived()
}

// PageRows returns the current page of the derived view
func (c *Controller) PageRows() []*domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageRows(c.derived(), c.view.PageIndex, c.view.PageSize)
}

// PageCount returns the number of pages in the derived view
func (c *Controller) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageCount(len(c.derived()), c.view.PageSize)
}

// SetFilter sets the global filter text. The page index is deliberately
// not clamped, so a filter that shrinks the collection can leave the view
// on an empty page.
func (c *Controller) SetFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.FilterText = text
}

// ToggleSort advances the sort cycle for the column
func (c *Controller) ToggleSort(column string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Sort = CycleSort(c.view.Sort, column)
}

// SetPageSize selects a page size from the fixed enumerated set.
// Unknown sizes are ignored. The page index is not clamped.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if config.IsValidPageSize(size) {
		c.view.PageSize = size
	}
}

// NextPage advances to the next page; a no-op on the last page
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view.PageIndex+1 >= PageCount(len(c.derived()), c.view.PageSize) {
		return
	}
	c.view.PageIndex++
}

// PrevPage moves to the previous page; a no-op on the first page
func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view.PageIndex == 0 {
		return
	}
	c.view.PageIndex--
}

// SetPageIndex jumps straight to a page. Negative indexes are ignored;
// an index past the end renders an empty page.
func (c *Controller) SetPageIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 {
		return
	}
	c.view.PageIndex = index
}

// DeleteTask deletes a task. On success the row is removed in place with
// no refetch and no signal; the UI applied the effect itself. On failure
// the rows are left unchanged and the error is logged and returned for a
// notification layer to display.
func (c *Controller) DeleteTask(ctx context.Context, id int64) error {
	if err := c.client.DeleteTask(ctx, id); err != nil {
		logging.Errorf("table: delete of task %d failed: %v\n", id, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, row := range c.rows {
		if row.ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			break
		}
	}
	return nil
}

// PatchField partially updates one task field (inline priority/status
// editing). On success the invalidation signal is published so every
// mounted controller, this one included, refetches authoritative server
// state; no optimistic local patch is applied.
func (c *Controller) PatchField(ctx context.Context, id int64, field string, value string) error {
	if field != ColumnPriority && field != ColumnStatus {
		return fmt.Errorf("field %q is not editable inline", field)
	}

	if _, err := c.client.PatchTask(ctx, id, map[string]interface{}{field: value}); err != nil {
		logging.Errorf("table: patch of task %d failed: %v\n", id, err)
		return err
	}

	c.bus.Publish(bus.TasksChanged)
	return nil
}

// ViewTask fetches a single task by id, independently of the collection
// state. A missing task surfaces as a not-found error for the caller to
// render.
func (c *Controller) ViewTask(ctx context.Context, id int64) (*domain.Task, error) {
	return c.client.GetTask(ctx, id)
}
