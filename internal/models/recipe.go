package models

// Recipe is a cooking recipe with its background story.
type Recipe struct {
	BaseModel

	ImageURL        string `gorm:"not null" json:"image_url"`
	BackgroundStory string `gorm:"type:text;not null" json:"backgroundstory"`
	Ingredients     string `gorm:"type:text;not null" json:"ingredients"`
	Steps           string `gorm:"type:text;not null" json:"steps"`
}
