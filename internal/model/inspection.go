package model

import "time"

// Inspection — одна проверка техсостояния (roadworthy inspection).
// ChecklistItems и Photos хранятся как JSON-колонки.
type Inspection struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	// Business key. Not a unique DB constraint: retests are sibling rows
	// sharing the number, uniqueness of fresh creates is checked in the service.
	RoadworthyNumber string `gorm:"not null;index" json:"roadworthyNumber"`

	ClientName         string `gorm:"not null;default:''" json:"clientName"`
	VehicleDescription string `gorm:"not null;default:''" json:"vehicleDescription"`

	// in-progress | pass | fail
	Status string `gorm:"not null;default:in-progress" json:"status"`

	// item name -> completed flag; initialized with the full vocabulary set false.
	ChecklistItems map[string]bool `gorm:"serializer:json" json:"checklistItems"`

	// item name -> photo URLs in capture order; keys pruned when emptied.
	Photos map[string][]string `gorm:"serializer:json" json:"photos"`

	// 1 for the original test, max+1 for each retest of the same number.
	TestNumber int `gorm:"not null;default:1" json:"testNumber"`

	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// PhotoCount returns the number of photos attached to an item.
func (i *Inspection) PhotoCount(item string) int {
	if i.Photos == nil {
		return 0
	}
	return len(i.Photos[item])
}
