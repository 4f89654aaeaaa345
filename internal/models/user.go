package models

// User represents a registered customer or administrator.
// The password column stores a bcrypt hash and is never serialised.
type User struct {
	BaseModel

	Fullname    string `gorm:"not null" json:"fullname"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Nationality string `json:"nationality"`
	Password    string `gorm:"not null" json:"-"`

	IsAdmin bool `gorm:"default:false" json:"is_admin"`
}
