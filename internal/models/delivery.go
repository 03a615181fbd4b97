package models

import "time"

// Delivery is an immutable event: one unit of branch stock handed to one
// member. Rows are only ever inserted. Member and branch ids are plain
// back-references without FK enforcement, so the history survives member
// deletion.
type Delivery struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	MemberID    uint      `gorm:"index;not null" json:"member_id"`
	BranchID    uint      `gorm:"index;not null" json:"branch_id"`
	OperatorID  uint      `gorm:"index;not null" json:"operator_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	PickedUpBy  string    `gorm:"default:''" json:"picked_up_by"`
	DeliveredAt time.Time `gorm:"index" json:"delivered_at"`
}

// TableName sets the table name.
func (Delivery) TableName() string {
	return "deliveries"
}
