package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontrack-app/ontrack/internal/models"
	"github.com/ontrack-app/ontrack/internal/store"
)

func TestAddColumnEnforcesLimit(t *testing.T) {
	s := loggedInStore(t)

	var cols []models.Column
	var err error
	for i := 0; i < store.MaxColumns; i++ {
		// distinct IDs rely on the timestamp, so give each one explicitly
		cols, err = s.SetColumns(append(cols, models.Column{
			ID:    fmt.Sprintf("col-%d", i),
			Title: fmt.Sprintf("Class %d", i),
		}))
		require.NoError(t, err)
	}

	got, err := s.AddColumn("one too many", "#fff")
	assert.ErrorIs(t, err, store.ErrColumnLimit)
	assert.Len(t, got, store.MaxColumns)
}

func TestEnsureDefaultColumnSeedsOnce(t *testing.T) {
	s := loggedInStore(t)

	cols, err := s.EnsureDefaultColumn()
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "General", cols[0].Title)
	assert.NotEmpty(t, cols[0].ID)

	// second call observes the existing tab and seeds nothing
	again, err := s.EnsureDefaultColumn()
	require.NoError(t, err)
	assert.Equal(t, cols, again)
}

func TestUpdateColumn(t *testing.T) {
	s := loggedInStore(t)

	cols, err := s.AddColumn("Math", "#f00")
	require.NoError(t, err)
	id := cols[0].ID

	cols, err = s.UpdateColumn(id, "Calculus", "#0f0")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "Calculus", cols[0].Title)
	assert.Equal(t, "#0f0", cols[0].Color)
}

func TestDeleteColumnOrphansTasks(t *testing.T) {
	s := loggedInStore(t)

	cols, err := s.AddColumn("Math", "#f00")
	require.NoError(t, err)
	id := cols[0].ID

	_, err = s.AddTask(models.Task{ID: 1, Title: "homework", Status: id})
	require.NoError(t, err)
	_, err = s.AddTask(models.Task{ID: 2, Title: "elsewhere", Status: "col-other"})
	require.NoError(t, err)

	cols, tasks, err := s.DeleteColumn(id)
	require.NoError(t, err)
	assert.Empty(t, cols)

	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.NotEqual(t, id, task.Status)
	}
	assert.Equal(t, "", tasks[0].Status)
	// tasks pointing at other tabs are untouched
	assert.Equal(t, "col-other", tasks[1].Status)
}

func TestDeleteColumnMissKeepsCollection(t *testing.T) {
	s := loggedInStore(t)

	_, err := s.AddColumn("Math", "#f00")
	require.NoError(t, err)

	cols, _, err := s.DeleteColumn("col-missing")
	require.NoError(t, err)
	assert.Len(t, cols, 1)
}
