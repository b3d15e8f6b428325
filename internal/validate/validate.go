// Package validate gates raw input before it becomes a model.Task.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/idilsaglam/todolist/internal/model"
)

var (
	ErrBlankTitle    = errors.New("title cannot be null or blank")
	ErrDueDateFormat = errors.New("due date must be YYYY-MM-DD")
	ErrPriority      = errors.New("priority must be low, medium, or high")
	ErrNilCategory   = errors.New("category cannot be null")
	ErrEncoding      = errors.New("title and description must be valid UTF-8")
)

// Shape only: "2025-13-99" is accepted.
var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NewTask checks the fields in order and returns the first failure.
// On success the task has a canonical priority and is not completed.
func NewTask(title, description, dueDate string, category model.Category, priority string) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, ErrBlankTitle
	}
	if !utf8.ValidString(title) || !utf8.ValidString(description) {
		return model.Task{}, ErrEncoding
	}
	if !DueDate(dueDate) {
		return model.Task{}, ErrDueDateFormat
	}
	p, ok := model.ParsePriority(priority)
	if !ok {
		return model.Task{}, ErrPriority
	}
	if !category.Valid() {
		return model.Task{}, ErrNilCategory
	}
	return model.Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Category:    category,
		Priority:    p,
	}, nil
}

// DueDate reports whether s has the YYYY-MM-DD shape.
func DueDate(s string) bool {
	return dueDatePattern.MatchString(s)
}
