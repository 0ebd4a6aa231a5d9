package models

import "time"

// RestaurantSettings disimpan sebagai satu baris saja (dibuat otomatis saat
// pertama kali diakses lewat admin API).
type RestaurantSettings struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	RestaurantName        string    `gorm:"type:varchar(255);not null;default:'Bistro Reserve'" json:"restaurant_name"`
	RestaurantPhone       *string   `gorm:"type:varchar(50)" json:"restaurant_phone,omitempty"`
	RestaurantEmail       *string   `gorm:"type:varchar(255)" json:"restaurant_email,omitempty"`
	RestaurantAddress     *string   `gorm:"type:varchar(512)" json:"restaurant_address,omitempty"`
	OpeningTime           string    `gorm:"type:varchar(5);not null;default:'11:00'" json:"opening_time"`
	ClosingTime           string    `gorm:"type:varchar(5);not null;default:'22:00'" json:"closing_time"`
	BookingSlotDuration   int       `gorm:"not null;default:90" json:"booking_slot_duration"`
	MaxAdvanceBookingDays int       `gorm:"not null;default:30" json:"max_advance_booking_days"`
	IsOnline              bool      `gorm:"not null;default:true" json:"is_online"`
	MaintenanceMessage    *string   `gorm:"type:text" json:"maintenance_message,omitempty"`
	CreatedAt             time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time `gorm:"not null" json:"updated_at"`
}
