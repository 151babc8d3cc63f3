package model

// Driver is one row of the driver roster, table drivers. Mirrors the Drivers
// sheet, keyed by display name (the Jobs sheet references drivers by name,
// not by id, and the import keeps that contract).
type Driver struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"            json:"-"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Phone    string `gorm:"type:varchar(20)"                    json:"phone"`
	IsActive bool   `gorm:"not null;default:true"               json:"is_active"`
}

// TableName maps the model to the drivers table.
func (Driver) TableName() string { return "drivers" }
