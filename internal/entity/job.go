package entity

import (
	"time"

	"gorm.io/datatypes"
)

// JobType identifies which strategy executes a job.
type JobType string

const (
	JobTypeFilingAnalyzer JobType = "filing_analyzer"
	JobTypeTrendReport    JobType = "trend_report"
)

// Job is a stored analysis definition executed by the analyzer service.
type Job struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Type        JobType        `gorm:"type:varchar(50);not null" json:"type"`
	Payload     datatypes.JSON `json:"payload"`
	Timeout     int            `gorm:"default:300" json:"timeout"`
	Schedules   []TaskSchedule `gorm:"foreignKey:JobID" json:"schedules"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Job model.
func (Job) TableName() string {
	return "jobs"
}
