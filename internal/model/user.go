package model

// User is a manager console account, table users.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"                    json:"-"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"       json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"                  json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'manager'" json:"role"`
}

// TableName maps the model to the users table.
func (User) TableName() string { return "users" }
