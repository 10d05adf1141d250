package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskify/internal/domain"
)

func makeTask(id int64, title, category string, priority domain.Priority, status domain.Status) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       title,
		Description: "description of " + title,
		Category:    category,
		Priority:    priority,
		Status:      status,
		CreatedAt:   time.Date(2026, 1, int(id), 12, 0, 0, 0, time.UTC),
	}
}

func sampleRows() []*domain.Task {
	return []*domain.Task{
		makeTask(1, "Write report", "work", domain.PriorityHigh, domain.StatusPending),
		makeTask(2, "Buy groceries", "home", domain.PriorityLow, domain.StatusCompleted),
		makeTask(3, "Review budget", "work", domain.PriorityMedium, domain.StatusInProgress),
		makeTask(4, "Call plumber", "home", domain.PriorityHigh, domain.StatusPending),
	}
}

func ids(rows []*domain.Task) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		expected []int64
	}{
		{
			name:     "should keep every row for an empty filter",
			filter:   "",
			expected: []int64{1, 2, 3, 4},
		},
		{
			name:     "should match case-insensitively",
			filter:   "REPORT",
			expected: []int64{1},
		},
		{
			name:     "should match against any field",
			filter:   "work",
			expected: []int64{1, 3},
		},
		{
			name:     "should match against the status field",
			filter:   "in progress",
			expected: []int64{3},
		},
		{
			name:     "should match against the stringified id",
			filter:   "4",
			expected: []int64{4},
		},
		{
			name:     "should return no rows when nothing matches",
			filter:   "zzz",
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterRows(sampleRows(), tt.filter)
			assert.Equal(t, tt.expected, ids(filtered))
		})
	}
}

func TestSortRows(t *testing.T) {
	tests := []struct {
		name     string
		spec     SortSpec
		expected []int64
	}{
		{
			name:     "should keep collection order for an empty spec",
			spec:     SortSpec{},
			expected: []int64{1, 2, 3, 4},
		},
		{
			name:     "should sort by title ascending",
			spec:     SortSpec{Column: ColumnTitle, Direction: SortAsc},
			expected: []int64{2, 4, 3, 1},
		},
		{
			name:     "should sort by title descending",
			spec:     SortSpec{Column: ColumnTitle, Direction: SortDesc},
			expected: []int64{1, 3, 4, 2},
		},
		{
			name: "should keep collection order for ties",
			// Priority "High" appears twice; lexicographic: High, High, Low, Medium
			spec:     SortSpec{Column: ColumnPriority, Direction: SortAsc},
			expected: []int64{1, 4, 2, 3},
		},
		{
			name:     "should sort by created_at chronologically",
			spec:     SortSpec{Column: ColumnCreatedAt, Direction: SortDesc},
			expected: []int64{4, 3, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRows()
			sorted := SortRows(rows, tt.spec)
			assert.Equal(t, tt.expected, ids(sorted))
			// The input order is never mutated
			assert.Equal(t, []int64{1, 2, 3, 4}, ids(rows))
		})
	}
}

func TestPageRows(t *testing.T) {
	rows := make([]*domain.Task, 0, 12)
	for i := int64(1); i <= 12; i++ {
		rows = append(rows, makeTask(i, "Task", "work", domain.PriorityLow, domain.StatusPending))
	}

	tests := []struct {
		name      string
		pageIndex int
		pageSize  int
		expected  []int64
	}{
		{
			name:      "should return the first page",
			pageIndex: 0,
			pageSize:  5,
			expected:  []int64{1, 2, 3, 4, 5},
		},
		{
			name:      "should return a short final page",
			pageIndex: 2,
			pageSize:  5,
			expected:  []int64{11, 12},
		},
		{
			name:      "should return an empty page past the end",
			pageIndex: 5,
			pageSize:  5,
			expected:  nil,
		},
		{
			name:      "should return nothing for a non-positive page size",
			pageIndex: 0,
			pageSize:  0,
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := PageRows(rows, tt.pageIndex, tt.pageSize)
			if tt.expected == nil {
				assert.Empty(t, page)
				return
			}
			assert.Equal(t, tt.expected, ids(page))
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name     string
		rowCount int
		pageSize int
		expected int
	}{
		{"should round up a partial page", 12, 5, 3},
		{"should count exact pages", 10, 5, 2},
		{"should report zero pages for no rows", 0, 5, 0},
		{"should report zero pages for an invalid size", 10, 0, 0},
		{"should report one page when everything fits", 3, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageCount(tt.rowCount, tt.pageSize))
		})
	}
}

func TestCycleSort(t *testing.T) {
	t.Run("should cycle ascending, descending, unsorted on one column", func(t *testing.T) {
		spec := SortSpec{}

		spec = CycleSort(spec, ColumnTitle)
		require.Equal(t, SortSpec{Column: ColumnTitle, Direction: SortAsc}, spec)

		spec = CycleSort(spec, ColumnTitle)
		require.Equal(t, SortSpec{Column: ColumnTitle, Direction: SortDesc}, spec)

		spec = CycleSort(spec, ColumnTitle)
		assert.Equal(t, SortSpec{}, spec)
	})

	t.Run("should restart ascending when the column changes", func(t *testing.T) {
		spec := SortSpec{Column: ColumnTitle, Direction: SortDesc}

		spec = CycleSort(spec, ColumnStatus)

		assert.Equal(t, SortSpec{Column: ColumnStatus, Direction: SortAsc}, spec)
	})
}
