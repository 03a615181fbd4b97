package repository

import "time"

// MemberListFilter narrows the paginated member listing.
type MemberListFilter struct {
	Page     int
	PageSize int
	// Status is "all", "collected" or "pending".
	Status string
	Search string
}

// DeliveryListFilter narrows the delivery event listing.
type DeliveryListFilter struct {
	Page          int
	PageSize      int
	BranchID      uint
	OperatorID    uint
	DeliveredFrom *time.Time
	DeliveredTo   *time.Time
}

// UserListFilter narrows the account listing.
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	Keyword  string
}
