package models

import "time"

// Status booking. Hanya "confirmed" yang ikut dihitung saat cek konflik jadwal.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusNoShow    = "no_show"
)

type Booking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TableID       uint      `gorm:"not null;index:idx_bookings_conflict,priority:1" json:"table_id"`
	Table         Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	BookingDate   time.Time `gorm:"not null;index:idx_bookings_date" json:"booking_date"`
	StartTime     time.Time `gorm:"not null;index:idx_bookings_conflict,priority:3" json:"start_time"`
	EndTime       time.Time `gorm:"not null;index:idx_bookings_conflict,priority:4" json:"end_time"`
	PartySize     int       `gorm:"not null" json:"party_size"`
	Status        string    `gorm:"type:varchar(20);not null;default:'confirmed';index:idx_bookings_conflict,priority:2" json:"status"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CustomerName  *string   `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone *string   `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidBookingStatus memvalidasi nilai status dari request admin.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}
