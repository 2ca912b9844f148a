package models

import "time"

// JobRun records the last successful run date per scheduled job so a restart
// at 00:01 cannot re-run (or double-run) a day.
type JobRun struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex"    json:"name"`
	RunDate   time.Time `gorm:"type:date;not null"                json:"runDate"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                    json:"updatedAt"`
}
