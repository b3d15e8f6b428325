// Package tasklist holds the authoritative in-memory task collection.
package tasklist

import (
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
)

// Store is an ordered task collection addressed by index.
// Insertion order is display order. Callers only ever see copies.
type Store struct {
	tasks []model.Task
}

func New() *Store {
	return &Store{tasks: []model.Task{}}
}

// Add appends a copy of t. A nil task or a blank title is rejected.
func (s *Store) Add(t *model.Task) bool {
	if t == nil || strings.TrimSpace(t.Title) == "" {
		return false
	}
	s.tasks = append(s.tasks, *t)
	return true
}

// Delete removes the task at index; later tasks shift down by one.
func (s *Store) Delete(index int) bool {
	if !s.inRange(index) {
		return false
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return true
}

// MarkCompleted sets the completed flag. Marking twice is fine.
func (s *Store) MarkCompleted(index int) bool {
	if !s.inRange(index) {
		return false
	}
	s.tasks[index].Completed = true
	return true
}

// All returns a copy of the collection, never nil.
func (s *Store) All() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

// Replace swaps the whole collection for a copy of tasks.
func (s *Store) Replace(tasks []model.Task) {
	s.tasks = make([]model.Task, len(tasks))
	copy(s.tasks, tasks)
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
