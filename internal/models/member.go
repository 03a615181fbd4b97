package models

import "time"

// Member is an entitled recipient ("socio"). Collected flips true exactly
// once through a delivery, or through the explicit administrative override.
// Removal is a hard delete; past deliveries keep their member id.
type Member struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	MembershipNumber string    `gorm:"uniqueIndex;not null" json:"membership_number"`
	Name             string    `gorm:"not null" json:"name"`
	Credential       string    `gorm:"default:''" json:"credential"`
	Collected        bool      `gorm:"not null;default:false" json:"collected"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Member) TableName() string {
	return "members"
}
