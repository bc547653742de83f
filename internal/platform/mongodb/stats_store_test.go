package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhoudret/taskdeck-api/internal/domain"
)

func TestBuildStats(t *testing.T) {
	groups := []statusGroup{
		{Status: domain.StatusTodo, Count: 4, EstimatedDuration: 120, ActualDuration: 0},
		{Status: domain.StatusInProgress, Count: 2, EstimatedDuration: 90, ActualDuration: 30},
		{Status: domain.StatusDone, Count: 4, EstimatedDuration: 200, ActualDuration: 240},
	}

	stats := buildStats(groups, 3, 2)

	assert.Equal(t, int64(10), stats.TotalTasks)
	assert.Equal(t, int64(410), stats.TotalEstimatedDuration)
	assert.Equal(t, int64(270), stats.TotalActualDuration)
	assert.Equal(t, int64(3), stats.OverdueTasks)
	assert.Equal(t, int64(2), stats.ImportantPendingTasks)
	assert.InDelta(t, 40.0, stats.CompletionRate, 0.001)
	assert.Len(t, stats.Statuses, 3)
}

func TestBuildStatsNoTasks(t *testing.T) {
	stats := buildStats(nil, 0, 0)

	assert.Equal(t, int64(0), stats.TotalTasks)
	assert.Equal(t, 0.0, stats.CompletionRate, "completion rate is 0 for an empty collection, not NaN")
	assert.NotNil(t, stats.Statuses, "status list should serialize as [] rather than null")
	assert.Empty(t, stats.Statuses)
}

func TestBuildStatsNoDoneTasks(t *testing.T) {
	groups := []statusGroup{
		{Status: domain.StatusTodo, Count: 5},
	}

	stats := buildStats(groups, 1, 0)

	assert.Equal(t, int64(5), stats.TotalTasks)
	assert.Equal(t, 0.0, stats.CompletionRate)
}
