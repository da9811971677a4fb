package model

import "time"

// Avatar type variants.
const (
	AvatarTypeGeneric   = "generic"
	AvatarTypeBiometric = "biometric"
	AvatarTypeCustom    = "custom"
)

// Avatar is a user's single profile describing body, appearance and sharing
// preferences. The unique index on UserID enforces one avatar per user at the
// storage layer; application code still checks first and reports a conflict.
type Avatar struct {
	ID                       uint      `json:"id" gorm:"primaryKey"`
	UserID                   uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	FullName                 string    `json:"full_name" gorm:"size:255;not null"`
	Bio                      string    `json:"bio" gorm:"type:text"`
	Age                      int       `json:"age" gorm:"not null"`
	Height                   float64   `json:"height" gorm:"not null"`
	HeightUnit               string    `json:"height_unit" gorm:"size:10;not null"`
	Weight                   float64   `json:"weight" gorm:"not null"`
	WeightUnit               string    `json:"weight_unit" gorm:"size:10;not null"`
	AvatarType               string    `json:"avatar_type" gorm:"size:20;not null;index"`
	GenericAvatarStyle       string    `json:"generic_avatar_style" gorm:"size:100"`
	BiometricVerified        bool      `json:"biometric_verified" gorm:"default:false"`
	MeasurementMode          string    `json:"measurement_mode" gorm:"size:50;not null"`
	AutoEstimated            bool      `json:"auto_estimated" gorm:"default:false"`
	ShareWithWorld           bool      `json:"share_with_world" gorm:"default:false"`
	CreateAssistant          bool      `json:"create_assistant" gorm:"default:false"`
	CreateGreetingCards      bool      `json:"create_greeting_cards" gorm:"default:false"`
	PublicProfile            bool      `json:"public_profile" gorm:"default:false;index"`
	AllowConnections         bool      `json:"allow_connections" gorm:"default:true"`
	SelectedGreetingTemplate string    `json:"selected_greeting_template" gorm:"size:100"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`

	// Relations
	Measurements *BodyMeasurement `json:"-" gorm:"foreignKey:AvatarID;constraint:OnDelete:CASCADE"`
	Wardrobe     []AvatarGarment  `json:"-" gorm:"foreignKey:AvatarID;constraint:OnDelete:CASCADE"`
}

// AvatarPatch is a partial update for an avatar profile, one optional field
// per updatable attribute. Nil fields are left untouched.
type AvatarPatch struct {
	FullName                 *string
	Bio                      *string
	Age                      *int
	Height                   *float64
	HeightUnit               *string
	Weight                   *float64
	WeightUnit               *string
	AvatarType               *string
	GenericAvatarStyle       *string
	BiometricVerified        *bool
	MeasurementMode          *string
	AutoEstimated            *bool
	ShareWithWorld           *bool
	CreateAssistant          *bool
	CreateGreetingCards      *bool
	PublicProfile            *bool
	AllowConnections         *bool
	SelectedGreetingTemplate *string
}

// Changes returns the column/value pairs the patch sets. An empty map means
// the patch is a no-op.
func (p AvatarPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.FullName != nil {
		changes["full_name"] = *p.FullName
	}
	if p.Bio != nil {
		changes["bio"] = *p.Bio
	}
	if p.Age != nil {
		changes["age"] = *p.Age
	}
	if p.Height != nil {
		changes["height"] = *p.Height
	}
	if p.HeightUnit != nil {
		changes["height_unit"] = *p.HeightUnit
	}
	if p.Weight != nil {
		changes["weight"] = *p.Weight
	}
	if p.WeightUnit != nil {
		changes["weight_unit"] = *p.WeightUnit
	}
	if p.AvatarType != nil {
		changes["avatar_type"] = *p.AvatarType
	}
	if p.GenericAvatarStyle != nil {
		changes["generic_avatar_style"] = *p.GenericAvatarStyle
	}
	if p.BiometricVerified != nil {
		changes["biometric_verified"] = *p.BiometricVerified
	}
	if p.MeasurementMode != nil {
		changes["measurement_mode"] = *p.MeasurementMode
	}
	if p.AutoEstimated != nil {
		changes["auto_estimated"] = *p.AutoEstimated
	}
	if p.ShareWithWorld != nil {
		changes["share_with_world"] = *p.ShareWithWorld
	}
	if p.CreateAssistant != nil {
		changes["create_assistant"] = *p.CreateAssistant
	}
	if p.CreateGreetingCards != nil {
		changes["create_greeting_cards"] = *p.CreateGreetingCards
	}
	if p.PublicProfile != nil {
		changes["public_profile"] = *p.PublicProfile
	}
	if p.AllowConnections != nil {
		changes["allow_connections"] = *p.AllowConnections
	}
	if p.SelectedGreetingTemplate != nil {
		changes["selected_greeting_template"] = *p.SelectedGreetingTemplate
	}
	return changes
}
