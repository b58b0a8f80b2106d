package store

import (
	"time"

	"github.com/ontrack-app/ontrack/internal/models"
)

// Tasks returns the session user's tasks in insertion order.
// Returns an empty slice when logged out.
func (s *Store) Tasks() ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	var tasks []models.Task
	if err := s.readJSON(s.tasksKey(), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) writeTasks(tasks []models.Task) error {
	return s.writeJSON(s.tasksKey(), tasks)
}

// AddTask appends a task and returns the refreshed collection. A zero ID is
// assigned from the wall clock in milliseconds, which is what makes task IDs
// effectively unique within a user's collection.
func (s *Store) AddTask(task models.Task) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	if task.ID == 0 {
		task.ID = time.Now().UnixMilli()
	}

	tasks, err := s.Tasks()
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, task)
	if err := s.writeTasks(tasks); err != nil {
		return nil, err
	}
	s.info("added task", "id", task.ID, "title", task.Title)
	return tasks, nil
}

// SetTasks replaces the whole collection, used by bulk edits such as
// clearing a weekday's assignments.
func (s *Store) SetTasks(tasks []models.Task) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	if err := s.writeTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteTask removes the task with the given ID. Deleting an ID that no
// longer exists is a benign no-op.
func (s *Store) DeleteTask(id int64) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	tasks, err := s.Tasks()
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := s.writeTasks(tasks); err != nil {
				return nil, err
			}
			s.info("deleted task", "id", id)
			break
		}
	}
	return tasks, nil
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Status      *string
	Color       *string
	Day         *string
}

// UpdateTask merges the update into the matching task. A miss is a no-op.
func (s *Store) UpdateTask(id int64, up TaskUpdate) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	tasks, err := s.Tasks()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if up.Title != nil {
			tasks[i].Title = *up.Title
		}
		if up.Description != nil {
			tasks[i].Description = *up.Description
		}
		if up.DueDate != nil {
			tasks[i].DueDate = *up.DueDate
		}
		if up.Status != nil {
			tasks[i].Status = *up.Status
		}
		if up.Color != nil {
			tasks[i].Color = *up.Color
		}
		if up.Day != nil {
			tasks[i].Day = *up.Day
		}
		if err := s.writeTasks(tasks); err != nil {
			return nil, err
		}
		break
	}
	return tasks, nil
}

// CompleteTask removes the task and increments the completed counter by one.
// Completion is destructive; there is no undo. A miss changes nothing.
func (s *Store) CompleteTask(id int64) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	tasks, err := s.Tasks()
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := s.writeTasks(tasks); err != nil {
				return nil, err
			}
			if _, err := s.IncrementCompleted(); err != nil {
				return nil, err
			}
			s.info("completed task", "id", id)
			break
		}
	}
	return tasks, nil
}
