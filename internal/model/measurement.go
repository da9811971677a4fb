package model

import "time"

// BodyMeasurement holds the single measurement set owned by an avatar.
// All measurements are optional; absent values stay NULL.
type BodyMeasurement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AvatarID      uint      `json:"avatar_id" gorm:"uniqueIndex;not null"`
	Chest         *float64  `json:"chest" gorm:"type:decimal(6,2)"`
	Waist         *float64  `json:"waist" gorm:"type:decimal(6,2)"`
	Hips          *float64  `json:"hips" gorm:"type:decimal(6,2)"`
	ShoulderWidth *float64  `json:"shoulder_width" gorm:"type:decimal(6,2)"`
	Inseam        *float64  `json:"inseam" gorm:"type:decimal(6,2)"`
	ArmLength     *float64  `json:"arm_length" gorm:"type:decimal(6,2)"`
	NeckSize      *float64  `json:"neck_size" gorm:"type:decimal(6,2)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BodyMeasurementPatch updates measurements. Updates are "set if non-nil":
// a nil field never clears a stored value.
type BodyMeasurementPatch struct {
	Chest         *float64
	Waist         *float64
	Hips          *float64
	ShoulderWidth *float64
	Inseam        *float64
	ArmLength     *float64
	NeckSize      *float64
}

// Changes returns the column/value pairs the patch sets.
func (p BodyMeasurementPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Chest != nil {
		changes["chest"] = *p.Chest
	}
	if p.Waist != nil {
		changes["waist"] = *p.Waist
	}
	if p.Hips != nil {
		changes["hips"] = *p.Hips
	}
	if p.ShoulderWidth != nil {
		changes["shoulder_width"] = *p.ShoulderWidth
	}
	if p.Inseam != nil {
		changes["inseam"] = *p.Inseam
	}
	if p.ArmLength != nil {
		changes["arm_length"] = *p.ArmLength
	}
	if p.NeckSize != nil {
		changes["neck_size"] = *p.NeckSize
	}
	return changes
}
