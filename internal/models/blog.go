package models

// Blog is a published article on the storefront.
type Blog struct {
	BaseModel

	Headline    string `gorm:"not null" json:"headline"`
	Description string `gorm:"type:text;not null" json:"description"`
	Author      string `gorm:"not null" json:"author"`
}
