package domain

// StatusCount is the number of tasks in one lifecycle state.
type StatusCount struct {
	Status TaskStatus `json:"status"`
	Count  int64      `json:"count"`
}

// TaskStats summarizes one owner's tasks: per-status counts, total
// estimated/actual minutes, the completion rate as a percentage (0 when
// the owner has no tasks), and the overdue and important-pending counts.
type TaskStats struct {
	TotalTasks             int64         `json:"totalTasks"`
	Statuses               []StatusCount `json:"statuses"`
	TotalEstimatedDuration int64         `json:"totalEstimatedDuration"`
	TotalActualDuration    int64         `json:"totalActualDuration"`
	CompletionRate         float64       `json:"completionRate"`
	OverdueTasks           int64         `json:"overdueTasks"`
	ImportantPendingTasks  int64         `json:"importantPendingTasks"`
}
