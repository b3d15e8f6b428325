package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		due      string
		category model.Category
		priority string
		wantErr  error
	}{
		{"valid", "Title", "2025-10-10", model.CategoryErrands, "low", nil},
		{"upper priority", "Title", "2025-10-10", model.CategoryErrands, "LOW", nil},
		{"calendar-invalid date passes", "Title", "2025-13-99", model.CategoryWork, "High", nil},
		{"empty title", "", "2025-10-10", model.CategoryErrands, "low", ErrBlankTitle},
		{"blank title", " \t\n", "2025-10-10", model.CategoryErrands, "low", ErrBlankTitle},
		{"compact date", "Title", "20251010", model.CategoryErrands, "low", ErrDueDateFormat},
		{"no date", "Title", "No Date", model.CategoryErrands, "low", ErrDueDateFormat},
		{"trailing junk date", "Title", "2025-10-10x", model.CategoryErrands, "low", ErrDueDateFormat},
		{"unknown priority", "Title", "2025-10-10", model.CategoryErrands, "urgent", ErrPriority},
		{"nil category", "Task title", "2025-10-10", model.CategoryNone, "low", ErrNilCategory},
		{"undefined category", "Task title", "2025-10-10", model.Category(42), "low", ErrNilCategory},
		{"everything missing", "", "", model.CategoryNone, "", ErrBlankTitle},
		{"date before priority", "Title", "bad", model.CategoryErrands, "bad", ErrDueDateFormat},
		{"priority before category", "Title", "2025-10-10", model.CategoryNone, "bad", ErrPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.title, "Description", tt.due, tt.category, tt.priority)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTaskFields(t *testing.T) {
	task, err := NewTask("Title", "Description", "2025-10-10", model.CategoryErrands, "mEdIuM")
	require.NoError(t, err)
	assert.Equal(t, model.Task{
		Title:       "Title",
		Description: "Description",
		DueDate:     "2025-10-10",
		Category:    model.CategoryErrands,
		Priority:    model.PriorityMedium,
	}, task)
	assert.False(t, task.Completed)
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, ErrBlankTitle, "title cannot be null or blank")
	assert.EqualError(t, ErrDueDateFormat, "due date must be YYYY-MM-DD")
	assert.EqualError(t, ErrPriority, "priority must be low, medium, or high")
	assert.EqualError(t, ErrNilCategory, "category cannot be null")
	assert.EqualError(t, ErrEncoding, "title and description must be valid UTF-8")
}

func TestNewTaskEncoding(t *testing.T) {
	tests := []struct {
		name        string
		title, desc string
		wantErr     error
	}{
		{"unicode text", "Café ☕", "日本語", nil},
		{"bad title byte", "bad\xffbyte", "", ErrEncoding},
		{"bad description byte", "Title", "bad\xffbyte", ErrEncoding},
		{"truncated rune", "Caf\xc3", "", ErrEncoding},
		{"blank wins over encoding", " ", "\xff", ErrBlankTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.title, tt.desc, "2025-10-10", model.CategoryWork, "low")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
