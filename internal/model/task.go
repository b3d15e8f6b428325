package model

// Task is the domain model for a to-do entry.
// Everything but Completed is fixed once the task has been validated.
type Task struct {
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	DueDate     string   `json:"due_date" yaml:"due_date" toml:"due_date"`
	Category    Category `json:"category" yaml:"category" toml:"category"`
	Priority    Priority `json:"priority" yaml:"priority" toml:"priority"`
	Completed   bool     `json:"completed" yaml:"completed" toml:"completed"`
}

const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
)

// Status is the label shown in listings.
func (t Task) Status() string {
	if t.Completed {
		return StatusCompleted
	}
	return StatusPending
}
