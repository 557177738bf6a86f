package entity

import (
	"database/sql"
	"time"
)

// ExecutionStatus is the lifecycle state of one task execution.
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"
)

// TaskExecutionHistory records one execution of a job.
type TaskExecutionHistory struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	JobID        uint            `gorm:"not null;index" json:"job_id"`
	ScheduleID   uint            `json:"schedule_id"`
	Status       ExecutionStatus `gorm:"type:varchar(20);not null" json:"status"`
	Output       sql.NullString  `json:"output"`
	ErrorMessage sql.NullString  `json:"error_message"`
	StartedAt    time.Time       `gorm:"not null" json:"started_at"`
	CompletedAt  sql.NullTime    `json:"completed_at"`
}

// TableName specifies the table name for the TaskExecutionHistory model.
func (TaskExecutionHistory) TableName() string {
	return "task_execution_history"
}
