package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/ontrack-app/ontrack/internal/models"
)

// MaxColumns is the cap on tabs per user, enforced at creation only.
const MaxColumns = 8

// ErrColumnLimit is returned when creating a tab beyond MaxColumns.
var ErrColumnLimit = errors.New("column limit reached")

// DefaultColumnColor is the color seeded for a user's first tab.
const DefaultColumnColor = "#7aa2f7"

// Columns returns the session user's tabs. Returns an empty slice when
// logged out.
func (s *Store) Columns() ([]models.Column, error) {
	if s.session == nil {
		return nil, nil
	}
	var cols []models.Column
	if err := s.readJSON(s.columnsKey(), &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// SetColumns replaces the whole tab collection.
func (s *Store) SetColumns(cols []models.Column) ([]models.Column, error) {
	if s.session == nil {
		return nil, nil
	}
	if err := s.writeJSON(s.columnsKey(), cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// AddColumn creates a new tab, enforcing the per-user cap.
func (s *Store) AddColumn(title, color string) ([]models.Column, error) {
	if s.session == nil {
		return nil, nil
	}
	cols, err := s.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) >= MaxColumns {
		return cols, ErrColumnLimit
	}

	col := models.Column{
		ID:    fmt.Sprintf("col-%d", time.Now().UnixMilli()),
		Title: title,
		Color: color,
	}
	cols = append(cols, col)
	if err := s.writeJSON(s.columnsKey(), cols); err != nil {
		return nil, err
	}
	s.info("added column", "id", col.ID, "title", title)
	return cols, nil
}

// EnsureDefaultColumn seeds one starter tab the first time a user with zero
// tabs is observed. Returns the (possibly updated) collection.
func (s *Store) EnsureDefaultColumn() ([]models.Column, error) {
	if s.session == nil {
		return nil, nil
	}
	cols, err := s.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		return cols, nil
	}
	return s.AddColumn("General", DefaultColumnColor)
}

// UpdateColumn renames and/or recolors a tab in place. A miss is a no-op.
func (s *Store) UpdateColumn(id, title, color string) ([]models.Column, error) {
	if s.session == nil {
		return nil, nil
	}
	cols, err := s.Columns()
	if err != nil {
		return nil, err
	}
	for i := range cols {
		if cols[i].ID != id {
			continue
		}
		if title != "" {
			cols[i].Title = title
		}
		if color != "" {
			cols[i].Color = color
		}
		if err := s.writeJSON(s.columnsKey(), cols); err != nil {
			return nil, err
		}
		break
	}
	return cols, nil
}

// DeleteColumn removes a tab and resets the status of every task that pointed
// at it, so no task is left referencing a dead tab. The two writes are not
// atomic; a crash between them leaves orphaned statuses that the unsorted
// bucket still renders correctly.
func (s *Store) DeleteColumn(id string) ([]models.Column, []models.Task, error) {
	if s.session == nil {
		return nil, nil, nil
	}
	cols, err := s.Columns()
	if err != nil {
		return nil, nil, err
	}
	kept := cols[:0]
	for _, c := range cols {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := s.writeJSON(s.columnsKey(), kept); err != nil {
		return nil, nil, err
	}

	tasks, err := s.Tasks()
	if err != nil {
		return nil, nil, err
	}
	changed := false
	for i := range tasks {
		if tasks[i].Status == id {
			tasks[i].Status = ""
			changed = true
		}
	}
	if changed {
		if err := s.writeTasks(tasks); err != nil {
			return nil, nil, err
		}
	}
	s.info("deleted column", "id", id)
	return kept, tasks, nil
}
