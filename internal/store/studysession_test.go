package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontrack-app/ontrack/internal/models"
	"github.com/ontrack-app/ontrack/internal/store"
)

func TestAddStudyTaskDeduplicatesByID(t *testing.T) {
	s := loggedInStore(t)

	task := models.Task{ID: 1, Title: "read chapter 4"}
	tasks, err := s.AddStudyTask(task)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	tasks, err = s.AddStudyTask(task)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestRemoveStudyTask(t *testing.T) {
	s := loggedInStore(t)

	_, err := s.AddStudyTask(models.Task{ID: 1, Title: "a"})
	require.NoError(t, err)
	_, err = s.AddStudyTask(models.Task{ID: 2, Title: "b"})
	require.NoError(t, err)

	tasks, err := s.RemoveStudyTask(1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.EqualValues(t, 2, tasks[0].ID)

	// removing a non-member leaves the set unchanged
	tasks, err = s.RemoveStudyTask(99)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestStudyTaskIsAFrozenSnapshot(t *testing.T) {
	s := loggedInStore(t)

	_, err := s.AddTask(models.Task{ID: 1, Title: "before edit", Color: "#f00"})
	require.NoError(t, err)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	_, err = s.AddStudyTask(tasks[0])
	require.NoError(t, err)

	_, err = s.UpdateTask(1, store.TaskUpdate{Title: strPtr("after edit")})
	require.NoError(t, err)

	study, err := s.StudyTasks()
	require.NoError(t, err)
	require.Len(t, study, 1)
	assert.Equal(t, "before edit", study[0].Title)
}

func TestStudySetSurvivesSourceDeletion(t *testing.T) {
	s := loggedInStore(t)

	_, err := s.AddTask(models.Task{ID: 1, Title: "doomed"})
	require.NoError(t, err)
	_, err = s.AddStudyTask(models.Task{ID: 1, Title: "doomed"})
	require.NoError(t, err)

	_, err = s.DeleteTask(1)
	require.NoError(t, err)

	// no cascade: the snapshot stays until removed or cleared
	study, err := s.StudyTasks()
	require.NoError(t, err)
	assert.Len(t, study, 1)
}

func TestClearStudySession(t *testing.T) {
	s := loggedInStore(t)

	_, err := s.AddStudyTask(models.Task{ID: 1, Title: "a"})
	require.NoError(t, err)
	_, err = s.AddStudyTask(models.Task{ID: 2, Title: "b"})
	require.NoError(t, err)

	require.NoError(t, s.ClearStudySession())

	tasks, err := s.StudyTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
