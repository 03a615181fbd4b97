package constants

// Role names. Every request carries exactly one of these in its claims.
const (
	RoleSuper          = "super"
	RoleAdmin          = "admin"
	RoleBranchManager  = "branch_manager"
	RoleCashier        = "cashier"
	RoleRoamingCashier = "roaming_cashier"
)

// AllowedBranchesAll is the sentinel meaning a user may target any branch.
const AllowedBranchesAll = "all"

// Member list status filters.
const (
	MemberFilterAll       = "all"
	MemberFilterCollected = "collected"
	MemberFilterPending   = "pending"
)

// DeliveryQuantity is fixed by policy: one despensa per member.
const DeliveryQuantity = 1

// MemberSearchLimit bounds quick-search results for the POS screen.
const MemberSearchLimit = 10

// DefaultWarehouseStock is the warehouse quantity used when the inventory
// config section is absent.
const DefaultWarehouseStock = 10500

// Queue names.
const (
	QueueDefault = "default"
)

// Async task type names.
const (
	TaskMemberBulkImport = "member:bulk_import"
)
