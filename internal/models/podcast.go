package models

import "gorm.io/datatypes"

// Podcast is a published audio episode. The audio file lives in external
// object storage; only the resolved URL is persisted here.
type Podcast struct {
	BaseModel

	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Producers   datatypes.JSONSlice[string] `json:"producers"`
	AudioURL    string                      `gorm:"not null" json:"audio_url"`
}
