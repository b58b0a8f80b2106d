package store

import "github.com/ontrack-app/ontrack/internal/models"

// The study-session set holds full snapshots of the chosen tasks, keyed by
// task ID. A snapshot is frozen at add time: later edits to the source task
// do not propagate, and deleting or completing the source does not cascade
// here. The user clears or rebuilds the set per focus session.

// StudyTasks returns the study-session set. Order is insertion order.
func (s *Store) StudyTasks() ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	var tasks []models.Task
	if err := s.readJSON(s.studyKey(), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AddStudyTask inserts a snapshot of the task unless its ID is already
// present.
func (s *Store) AddStudyTask(task models.Task) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	tasks, err := s.StudyTasks()
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == task.ID {
			return tasks, nil
		}
	}
	tasks = append(tasks, task)
	if err := s.writeJSON(s.studyKey(), tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// RemoveStudyTask drops the snapshot with the given ID. The underlying task
// is untouched. A miss is a no-op.
func (s *Store) RemoveStudyTask(id int64) ([]models.Task, error) {
	if s.session == nil {
		return nil, nil
	}
	tasks, err := s.StudyTasks()
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := s.writeJSON(s.studyKey(), tasks); err != nil {
				return nil, err
			}
			break
		}
	}
	return tasks, nil
}

// ClearStudySession empties the set.
func (s *Store) ClearStudySession() error {
	if s.session == nil {
		return nil
	}
	return s.db.Delete(s.studyKey())
}
