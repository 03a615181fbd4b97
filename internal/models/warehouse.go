package models

// WarehouseStockID is the primary key of the single warehouse row.
const WarehouseStockID uint = 1

// WarehouseStock is the central pool of undistributed despensas. Exactly
// one row exists; every mutation happens through the stock ledger inside a
// transaction.
type WarehouseStock struct {
	ID       uint `gorm:"primarykey" json:"id"`
	Quantity int  `gorm:"not null;default:0" json:"quantity"`
}

// TableName sets the table name.
func (WarehouseStock) TableName() string {
	return "warehouse_stock"
}
