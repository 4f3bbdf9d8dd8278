package gormengine

import (
	"time"
)

// BatchRecord is the persisted form of an accepted batch submission.
type BatchRecord struct {
	ID             string `gorm:"type:varchar(36);primaryKey"`
	Name           string `gorm:"type:varchar(255);not null"`
	Queue          string `gorm:"type:varchar(255);not null"`
	Connection     string `gorm:"type:varchar(255);not null"`
	MaxAttempts    int    `gorm:"not null"`
	BackoffSeconds int    `gorm:"not null"`
	TimeoutSeconds int    `gorm:"not null"`
	AllowFailures  bool   `gorm:"not null"`
	TotalJobs      int    `gorm:"not null"`
	// FinallyJSON holds the serialized finally descriptor, empty when absent.
	FinallyJSON string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName overrides the default GORM table name.
func (BatchRecord) TableName() string {
	return "fanout_batches"
}

// JobRecord is one persisted child descriptor of a batch, in chunk order.
type JobRecord struct {
	ID       string `gorm:"type:varchar(36);primaryKey"`
	BatchID  string `gorm:"type:varchar(36);index;not null"`
	Position int    `gorm:"not null"`
	Mapping  string `gorm:"type:varchar(255);not null"`
	Queue    string `gorm:"type:varchar(255);not null"`
	// DescriptorJSON holds the full serialized descriptor, chain included.
	DescriptorJSON string `gorm:"type:text;not null"`
	CreatedAt      time.Time
}

// TableName overrides the default GORM table name.
func (JobRecord) TableName() string {
	return "fanout_batch_jobs"
}
