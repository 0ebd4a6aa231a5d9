package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/bistro-reserve/models"
)

// BookingDuration adalah durasi tetap satu slot reservasi.
const BookingDuration = 90 * time.Minute

var (
	ErrInvalidRequest   = errors.New("missing or invalid booking parameters")
	ErrTableNotFound    = errors.New("table not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("table capacity insufficient for party size")
	ErrBookingConflict  = errors.New("table is not available at the selected time")
	ErrNotBookingOwner  = errors.New("booking belongs to another user")
)

// BookingService menjawab "meja mana yang kosong untuk jam sekian?" dan
// menjaga supaya dua booking confirmed di meja yang sama tidak pernah
// saling tumpang tindih.
type BookingService struct {
	DB *gorm.DB

	// Now bisa diganti di test untuk mengontrol waktu.
	Now func() time.Time
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Now: time.Now}
}

// TableAvailability adalah satu meja kandidat plus flag ketersediaannya.
type TableAvailability struct {
	models.Table
	IsAvailable bool `json:"is_available"`
}

// Overlaps menguji apakah window booking existing bentrok dengan window yang
// diminta. Tiga klausa ini sengaja dipertahankan apa adanya (bukan tes
// interval simetris standar): sisi inklusif/eksklusif per klausa berbeda,
// sehingga sentuhan tepat end-ke-start TIDAK dihitung bentrok.
func Overlaps(existingStart, existingEnd, reqStart, reqEnd time.Time) bool {
	// existing.start <= req.start && existing.end > req.start
	if !existingStart.After(reqStart) && existingEnd.After(reqStart) {
		return true
	}
	// existing.start < req.end && existing.end >= req.end
	if existingStart.Before(reqEnd) && !existingEnd.Before(reqEnd) {
		return true
	}
	// existing.start >= req.start && existing.end <= req.end
	if !existingStart.Before(reqStart) && !existingEnd.After(reqEnd) {
		return true
	}
	return false
}

// CheckAvailability mengembalikan semua meja aktif berkapasitas cukup,
// masing-masing dengan flag is_available untuk window [start, start+90m).
// Meja yang kapasitasnya kurang tidak ikut dikembalikan sama sekali.
// Read-only, tidak ada side effect.
func (bs *BookingService) CheckAvailability(start time.Time, partySize int) ([]TableAvailability, error) {
	if start.IsZero() || partySize <= 0 {
		return nil, ErrInvalidRequest
	}
	end := start.Add(BookingDuration)

	var tables []models.Table
	if err := bs.DB.
		Where("is_active = ? AND capacity >= ?", true, partySize).
		Order("number asc").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	result := make([]TableAvailability, 0, len(tables))
	for _, table := range tables {
		var existing []models.Booking
		if err := bs.DB.
			Where("table_id = ? AND status = ?", table.ID, models.BookingStatusConfirmed).
			Find(&existing).Error; err != nil {
			return nil, err
		}

		available := true
		for _, b := range existing {
			if Overlaps(b.StartTime, b.EndTime, start, end) {
				available = false
				break
			}
		}
		result = append(result, TableAvailability{Table: table, IsAvailable: available})
	}

	return result, nil
}

type CreateBookingInput struct {
	UserID        uint
	TableID       uint
	BookingDate   time.Time
	StartTime     time.Time
	PartySize     int
	Notes         *string
	CustomerName  *string
	CustomerPhone *string
}

// CreateBooking membuat reservasi baru dengan status confirmed.
// Cek konflik di sini adalah yang otoritatif: selalu diulang di dalam
// transaksi walaupun caller sudah memanggil CheckAvailability sebelumnya,
// supaya celah time-of-check/time-of-use tertutup. Di MySQL baris booking
// confirmed untuk meja tsb di-lock (FOR UPDATE) sampai insert selesai,
// sehingga dua request bersamaan tidak bisa sama-sama lolos recheck.
func (bs *BookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	if input.TableID == 0 || input.BookingDate.IsZero() || input.StartTime.IsZero() || input.PartySize <= 0 {
		return nil, ErrInvalidRequest
	}

	endTime := input.StartTime.Add(BookingDuration)
	now := bs.Now()

	booking := models.Booking{
		UserID:        input.UserID,
		TableID:       input.TableID,
		BookingDate:   input.BookingDate,
		StartTime:     input.StartTime,
		EndTime:       endTime,
		PartySize:     input.PartySize,
		Status:        models.BookingStatusConfirmed,
		Notes:         input.Notes,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, input.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		if table.Capacity < input.PartySize {
			return ErrCapacityExceeded
		}

		existing, err := bs.confirmedBookingsLocked(tx, input.TableID, 0)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if Overlaps(b.StartTime, b.EndTime, input.StartTime, endTime) {
				return ErrBookingConflict
			}
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	if err := bs.DB.Preload("Table").Preload("User").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking mengubah status menjadi cancelled (soft delete). Booking yang
// sudah cancelled tidak ikut dihitung pada cek konflik, jadi slotnya langsung
// bebas lagi. Hanya pemilik booking atau admin yang boleh membatalkan.
func (bs *BookingService) CancelBooking(bookingID, requesterID uint, isAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	if err := bs.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !isAdmin && booking.UserID != requesterID {
		return nil, ErrNotBookingOwner
	}

	booking.Status = models.BookingStatusCancelled
	booking.UpdatedAt = bs.Now()
	if err := bs.DB.Save(&booking).Error; err != nil {
		return nil, err
	}

	if err := bs.DB.Preload("Table").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

type UpdateBookingInput struct {
	Status    *string
	Notes     *string
	PartySize *int
	StartTime *time.Time
	EndTime   *time.Time
	TableID   *uint
}

// UpdateBooking adalah jalur admin. Berbeda dengan sistem lama, perubahan
// waktu/meja/jumlah tamu di sini tetap melewati predikat konflik dan cek
// kapasitas yang sama dengan pembuatan booking, supaya admin tidak bisa
// memindahkan reservasi ke window yang sudah terisi.
func (bs *BookingService) UpdateBooking(bookingID uint, input UpdateBookingInput) (*models.Booking, error) {
	var booking models.Booking

	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		windowChanged := false

		if input.Status != nil {
			if !models.IsValidBookingStatus(*input.Status) {
				return ErrInvalidRequest
			}
			booking.Status = *input.Status
		}
		if input.Notes != nil {
			booking.Notes = input.Notes
		}
		if input.PartySize != nil {
			if *input.PartySize <= 0 {
				return ErrInvalidRequest
			}
			booking.PartySize = *input.PartySize
			windowChanged = true
		}
		if input.TableID != nil && *input.TableID != booking.TableID {
			booking.TableID = *input.TableID
			windowChanged = true
		}
		if input.StartTime != nil {
			booking.StartTime = *input.StartTime
			if input.EndTime == nil {
				booking.EndTime = input.StartTime.Add(BookingDuration)
			}
			windowChanged = true
		}
		if input.EndTime != nil {
			booking.EndTime = *input.EndTime
			windowChanged = true
		}

		if !booking.EndTime.After(booking.StartTime) {
			return ErrInvalidRequest
		}

		var table models.Table
		if err := tx.First(&table, booking.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}
		if table.Capacity < booking.PartySize {
			return ErrCapacityExceeded
		}

		// Recheck hanya perlu kalau booking hasil edit masih confirmed dan
		// window/meja/partai berubah.
		if windowChanged && booking.Status == models.BookingStatusConfirmed {
			existing, err := bs.confirmedBookingsLocked(tx, booking.TableID, booking.ID)
			if err != nil {
				return err
			}
			for _, b := range existing {
				if Overlaps(b.StartTime, b.EndTime, booking.StartTime, booking.EndTime) {
					return ErrBookingConflict
				}
			}
		}

		booking.UpdatedAt = bs.Now()
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	if err := bs.DB.Preload("Table").Preload("User").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// confirmedBookingsLocked mengambil semua booking confirmed di satu meja,
// exclude booking tertentu (0 = tidak ada). Di MySQL baris-baris ini ikut
// di-lock sampai transaksi selesai; SQLite (dipakai test) tidak mengenal
// FOR UPDATE dan sudah serialized by default.
func (bs *BookingService) confirmedBookingsLocked(tx *gorm.DB, tableID, excludeID uint) ([]models.Booking, error) {
	q := tx.Where("table_id = ? AND status = ?", tableID, models.BookingStatusConfirmed)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
