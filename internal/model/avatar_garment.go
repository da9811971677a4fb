package model

import "time"

// AvatarGarment links a garment into an avatar's wardrobe. The composite
// unique index keeps at most one edge per (avatar, garment) pair.
type AvatarGarment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AvatarID  uint      `json:"avatar_id" gorm:"uniqueIndex:idx_avatar_garment;not null"`
	GarmentID uint      `json:"garment_id" gorm:"uniqueIndex:idx_avatar_garment;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Garment *Garment `json:"garment,omitempty" gorm:"foreignKey:GarmentID"`
}
