package store

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ontrack-app/ontrack/internal/kv"
)

// Storage key layout. All per-user collections are namespaced by username;
// switching sessions swaps the entire visible working set.
const (
	usersKey           = "ontrack_users"
	tasksKeyPrefix     = "ontrack_tasks_"
	columnsKeyPrefix   = "ontrack_columns_"
	completedKeyPrefix = "ontrack_completed_"
	studyKeyPrefix     = "ontrack_studysession_"
)

// Session identifies the logged-in user. It exists only in memory; only the
// username is retained, never the password.
type Session struct {
	Username string
}

// Store provides the identity operations and the per-user data collections.
// All per-user operations silently return empty results when no session is
// active; "not logged in" is an ambient precondition here, not an error.
type Store struct {
	db      *kv.DB
	logger  *log.Logger
	session *Session
}

// New creates a Store over the given database. logger may be nil.
func New(db *kv.DB, logger *log.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Session returns the active session, or nil when logged out.
func (s *Store) Session() *Session {
	return s.session
}

func (s *Store) tasksKey() string     { return tasksKeyPrefix + s.session.Username }
func (s *Store) columnsKey() string   { return columnsKeyPrefix + s.session.Username }
func (s *Store) completedKey() string { return completedKeyPrefix + s.session.Username }
func (s *Store) studyKey() string     { return studyKeyPrefix + s.session.Username }

// readJSON unmarshals the value at key into out. A missing key leaves out
// untouched. A value that fails to decode is treated as missing, matching the
// store's recover-by-rewriting behavior for corrupt entries.
func (s *Store) readJSON(key string, out any) error {
	data, ok, err := s.db.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.warn("discarding corrupt entry", "key", key, "err", err)
		return nil
	}
	return nil
}

func (s *Store) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return s.db.Set(key, data)
}

func (s *Store) info(msg string, kvs ...any) {
	if s.logger != nil {
		s.logger.Info(msg, kvs...)
	}
}

func (s *Store) warn(msg string, kvs ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, kvs...)
	}
}
