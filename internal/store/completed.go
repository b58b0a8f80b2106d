package store

import "strconv"

// Completed returns the user's lifetime completed-task count.
// The counter is persisted as a decimal string.
func (s *Store) Completed() (int, error) {
	if s.session == nil {
		return 0, nil
	}
	data, ok, err := s.db.Get(s.completedKey())
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		s.warn("discarding corrupt counter", "key", s.completedKey(), "err", err)
		return 0, nil
	}
	return n, nil
}

// SetCompleted replaces the counter.
func (s *Store) SetCompleted(n int) (int, error) {
	if s.session == nil {
		return 0, nil
	}
	if err := s.db.Set(s.completedKey(), []byte(strconv.Itoa(n))); err != nil {
		return 0, err
	}
	return n, nil
}

// IncrementCompleted adds one to the counter. The counter only ever grows;
// there is no undo for completing a task.
func (s *Store) IncrementCompleted() (int, error) {
	if s.session == nil {
		return 0, nil
	}
	cur, err := s.Completed()
	if err != nil {
		return 0, err
	}
	return s.SetCompleted(cur + 1)
}
