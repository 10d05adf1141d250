package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"taskify/internal/domain"
)

// SortDirection is one step of the column sort cycle
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// Column names accepted in a sort spec
const (
	ColumnTitle     = "title"
	ColumnCategory  = "category"
	ColumnPriority  = "priority"
	ColumnStatus    = "status"
	ColumnCreatedAt = "created_at"
)

// SortSpec describes the single-column sort applied to the view.
// A zero SortSpec means unsorted.
type SortSpec struct {
	Column    string
	Direction SortDirection
}

// ViewState is the client-only presentation state layered over fetched rows
type ViewState struct {
	FilterText string
	Sort       SortSpec
	PageIndex  int
	PageSize   int
}

// fieldStrings returns every field of the task in its string representation,
// the haystack for the global filter.
func fieldStrings(t *domain.Task) []string {
	return []string{
		fmt.Sprintf("%d", t.ID),
		t.Title,
		t.Description,
		t.Category,
		string(t.Priority),
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
	}
}

// FilterRows returns the rows whose stringified field values contain the
// filter text, case-insensitively. An empty filter keeps every row.
func FilterRows(rows []*domain.Task, filterText string) []*domain.Task {
	needle := strings.ToLower(filterText)
	filtered := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		for _, field := range fieldStrings(row) {
			if strings.Contains(strings.ToLower(field), needle) {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}

// sortKey returns the comparable value of the sorted column. Text columns
// compare lexicographically; created_at compares chronologically.
func sortKey(t *domain.Task, column string) string {
	switch column {
	case ColumnTitle:
		return t.Title
	case ColumnCategory:
		return t.Category
	case ColumnPriority:
		return string(t.Priority)
	case ColumnStatus:
		return string(t.Status)
	case ColumnCreatedAt:
		return t.CreatedAt.Format(time.RFC3339)
	default:
		return ""
	}
}

// SortRows returns the rows ordered by the sort spec. The sort is stable,
// so ties keep the original collection order. An empty spec returns the
// rows unchanged.
func SortRows(rows []*domain.Task, spec SortSpec) []*domain.Task {
	if spec.Direction == SortNone || spec.Column == "" {
		return rows
	}

	sorted := make([]*domain.Task, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := sortKey(sorted[i], spec.Column)
		b := sortKey(sorted[j], spec.Column)
		if spec.Direction == SortDesc {
			return a > b
		}
		return a < b
	})
	return sorted
}

// PageRows returns the pageSize-sized slice of rows at pageIndex.
// A page index past the end yields an empty page; the index is
// deliberately never clamped.
func PageRows(rows []*domain.Task, pageIndex, pageSize int) []*domain.Task {
	if pageSize <= 0 || pageIndex < 0 {
		return nil
	}
	start := pageIndex * pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns the number of pages the rows span at the given size
func PageCount(rowCount, pageSize int) int {
	if pageSize <= 0 || rowCount <= 0 {
		return 0
	}
	return (rowCount + pageSize - 1) / pageSize
}

// CycleSort advances the sort spec for a column through the
// ascending, descending, unsorted cycle. Selecting a different column
// clears the prior sort and starts ascending.
func CycleSort(current SortSpec, column string) SortSpec {
	if current.Column != column {
		return SortSpec{Column: column, Direction: SortAsc}
	}
	switch current.Direction {
	case SortNone:
		return SortSpec{Column: column, Direction: SortAsc}
	case SortAsc:
		return SortSpec{Column: column, Direction: SortDesc}
	default:
		return SortSpec{}
	}
}
