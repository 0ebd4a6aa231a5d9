package models

import "time"

// Table merepresentasikan satu meja fisik di floor plan.
// Geometry (x, y, width, height) hanya dipakai untuk tampilan denah.
type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Number      string    `gorm:"type:varchar(50);unique;not null" json:"number"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	X           int       `gorm:"not null;default:0" json:"x"`
	Y           int       `gorm:"not null;default:0" json:"y"`
	Width       int       `gorm:"not null;default:80" json:"width"`
	Height      int       `gorm:"not null;default:80" json:"height"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
