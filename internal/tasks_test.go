package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskManager(t *testing.T) {
	tm := NewTaskManager()

	tm.Add(&Task{ID: "a", FileName: "first.torrent", Status: TaskActive})
	tm.Add(&Task{ID: "b", FileName: "second.torrent", Status: TaskPending})
	tm.Add(&Task{ID: "c", FileName: "third.torrent", Status: TaskCompleted})
	tm.Add(&Task{ID: "d", FileName: "fourth.torrent", Status: TaskFailed})

	t.Run("get", func(t *testing.T) {
		task := tm.Get("b")
		require.NotNil(t, task)
		assert.Equal(t, "second.torrent", task.FileName)
		assert.Nil(t, tm.Get("missing"))
	})

	t.Run("active includes pending, in order", func(t *testing.T) {
		active := tm.GetActive()
		require.Len(t, active, 2)
		assert.Equal(t, "a", active[0].ID)
		assert.Equal(t, "b", active[1].ID)
	})

	t.Run("completed includes failed, newest first", func(t *testing.T) {
		completed := tm.GetCompleted(10)
		require.Len(t, completed, 2)
		assert.Equal(t, "d", completed[0].ID)
		assert.Equal(t, "c", completed[1].ID)
	})

	t.Run("completed respects limit", func(t *testing.T) {
		completed := tm.GetCompleted(1)
		require.Len(t, completed, 1)
		assert.Equal(t, "d", completed[0].ID)
	})
}
