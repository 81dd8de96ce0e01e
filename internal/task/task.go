// Package task defines the task record and its persisted blob format.
package task

import "time"

// Task is a single to-do item. Tasks are values: the store replaces a task
// on every change instead of mutating one that callers may still hold.
type Task struct {
	ID        int       `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// WithCompleted returns a copy of t with the completion flag set to done.
func (t Task) WithCompleted(done bool) Task {
	t.Completed = done
	return t
}

// WithText returns a copy of t carrying the given text.
func (t Task) WithText(text string) Task {
	t.Text = text
	return t
}

// CountCompleted returns how many tasks in the sequence are completed.
func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// MaxID returns the largest ID in the sequence, or 0 when it is empty.
func MaxID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}

// IndexOf returns the position of the task with the given ID, or -1.
func IndexOf(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
