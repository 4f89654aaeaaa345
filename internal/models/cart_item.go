package models

// CartItem is a single entry in a customer's cart.
type CartItem struct {
	BaseModel

	Cover string `gorm:"not null" json:"cover"`
	Title string `gorm:"not null" json:"title"`
	Price string `gorm:"not null" json:"price"`
}
