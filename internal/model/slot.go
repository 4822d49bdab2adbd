package model

import "time"

// Slot is the row backing one named slot in the SQL stores.
type Slot struct {
	Name      string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:longtext;not null"`
	UpdatedAt time.Time
}

func (Slot) TableName() string { return "kv_slots" }
