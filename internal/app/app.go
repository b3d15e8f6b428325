// Package app is the boundary the presentation layers call into.
//
// It owns the task list, validates input before it reaches the list and
// writes the full list through the gateway after every successful change.
package app

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/tasklist"
	"github.com/idilsaglam/todolist/internal/validate"
)

var (
	ErrTaskRejected     = errors.New("task was null")
	ErrInvalidSelection = errors.New("select a valid task")
	ErrLoad             = errors.New("failed to load tasks")
)

// Gateway persists the whole task collection.
type Gateway interface {
	Load() ([]model.Task, error)
	Save([]model.Task) error
}

// Row is one task as the presentation layer displays it.
type Row struct {
	Title       string
	Description string
	DueDate     string
	Category    string
	Priority    string
	Status      string
}

// App ties the task list to its gateway. Not safe for concurrent use.
type App struct {
	store   *tasklist.Store
	gateway Gateway
	logger  *log.Logger

	synced  bool
	saveErr error
}

// New returns an App with an empty list. Call Load once at startup.
func New(gateway Gateway, logger *log.Logger) *App {
	return &App{
		store:   tasklist.New(),
		gateway: gateway,
		logger:  logger,
	}
}

// Load replaces the list with the gateway's contents. On failure the list is
// left as it was and the returned error wraps both ErrLoad and the cause.
func (a *App) Load() error {
	tasks, err := a.gateway.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Debug("no task file yet", "err", err)
		} else {
			a.logger.Error("failed to load tasks", "err", err)
		}
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	a.store.Replace(tasks)
	a.synced = true
	a.saveErr = nil
	a.logger.Debug("loaded tasks", "count", len(tasks))
	return nil
}

// AddTask validates the fields and appends the task.
func (a *App) AddTask(title, description, dueDate string, category model.Category, priority string) error {
	task, err := validate.NewTask(title, description, dueDate, category, priority)
	if err != nil {
		a.logger.Debug("rejected task", "title", title, "err", err)
		return err
	}
	if !a.store.Add(&task) {
		return ErrTaskRejected
	}
	a.persist()
	return nil
}

// MarkTaskAsCompleted flags the task at row as done.
func (a *App) MarkTaskAsCompleted(row int) error {
	if !a.store.MarkCompleted(row) {
		return ErrInvalidSelection
	}
	a.persist()
	return nil
}

// DeleteTask removes the task at row.
func (a *App) DeleteTask(row int) error {
	if !a.store.Delete(row) {
		return ErrInvalidSelection
	}
	a.persist()
	return nil
}

// GetAllTasks returns display rows in list order.
func (a *App) GetAllTasks() []Row {
	tasks := a.store.All()
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, Row{
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Category:    t.Category.String(),
			Priority:    string(t.Priority),
			Status:      t.Status(),
		})
	}
	return rows
}

// Tasks returns a copy of the typed tasks.
func (a *App) Tasks() []model.Task {
	return a.store.All()
}

// Stats counts completed and pending tasks.
func (a *App) Stats() (completed, pending int) {
	for _, t := range a.store.All() {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return completed, pending
}

// Synced reports whether the last load or save left memory and disk equal.
func (a *App) Synced() bool { return a.synced }

// SaveErr is the last save failure, cleared by the next successful save.
func (a *App) SaveErr() error { return a.saveErr }

// persist writes the whole list. A failure keeps the in-memory change.
func (a *App) persist() {
	if err := a.gateway.Save(a.store.All()); err != nil {
		a.synced = false
		a.saveErr = err
		a.logger.Error("failed to save tasks", "err", err)
		return
	}
	a.synced = true
	a.saveErr = nil
}
