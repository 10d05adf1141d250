package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskify/internal/domain"
)

func TestListCommand_Execute(t *testing.T) {
	t.Run("should print the first page with default options", func(t *testing.T) {
		// Arrange
		app, client := setupTestApp(t, "T")
		client.addTask("Write report", "work", domain.PriorityHigh, domain.StatusPending)
		client.addTask("Buy groceries", "home", domain.PriorityLow, domain.StatusCompleted)

		// Act
		err := NewListCommand(app).Execute(context.Background(), ListOptions{})

		// Assert
		assert.NoError(t, err)
	})

	t.Run("should accept filter, sort and paging options", func(t *testing.T) {
		// Arrange
		app, client := setupTestApp(t, "T")
		for i := 0; i < 12; i++ {
			client.addTask("Write report", "work", domain.PriorityHigh, domain.StatusPending)
		}

		// Act
		err := NewListCommand(app).Execute(context.Background(), ListOptions{
			Filter:     "report",
			SortColumn: "title",
			Descending: true,
			Page:       1,
			PageSize:   10,
		})

		// Assert
		assert.NoError(t, err)
	})

	t.Run("should fail without a session", func(t *testing.T) {
		// Arrange
		app, _ := setupTestApp(t, "")

		// Act
		err := NewListCommand(app).Execute(context.Background(), ListOptions{})

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not signed in")
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short string untouched", "abc", 10, "abc"},
		{"exact length untouched", "abcde", 5, "abcde"},
		{"long string shortened", "abcdefgh", 5, "abcd…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.n))
		})
	}
}
