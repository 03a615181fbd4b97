package models

// Branch is a distribution point. OnHand is mutated only through the stock
// and delivery services, always inside a transaction.
type Branch struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	TargetQuota int    `gorm:"not null;default:0" json:"target_quota"`
	OnHand      int    `gorm:"not null;default:0" json:"on_hand"`
}

// TableName sets the table name.
func (Branch) TableName() string {
	return "branches"
}
