package models

// Ebook is a purchasable digital book. The cover image lives in external
// object storage; only the resolved URL is persisted here.
type Ebook struct {
	BaseModel

	ImageURL    string `gorm:"not null" json:"image_url"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Price       string `gorm:"not null" json:"price"`
	Pages       string `json:"pages"`
	Preview     string `gorm:"type:text" json:"preview"`

	IsPaid bool `gorm:"default:false" json:"is_paid"`
}
