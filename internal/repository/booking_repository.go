package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/booking-wizard/internal/model"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking and fills in its id and creation time.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if booking.Status == "" {
		booking.Status = model.BookingStatusNew
	}
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where(
			"name ILIKE ? OR phone ILIKE ? OR location ILIKE ?",
			like, like, like,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var bookings []model.Booking
	if err := query.Order("created_at DESC").Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListAll returns every booking ordered by id, for exports.
func (r *BookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Get returns gorm.ErrRecordNotFound when the booking does not exist.
func (r *BookingRepository) Get(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, id int64, update model.BookingUpdate) (*model.Booking, error) {
	var saved *model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			return err
		}

		changes := map[string]interface{}{}
		if update.Status != nil {
			changes["status"] = *update.Status
			booking.Status = *update.Status
		}
		if update.Note != nil {
			changes["admin_note"] = *update.Note
			booking.AdminNote = update.Note
		}
		if len(changes) > 0 {
			if err := tx.Model(&model.Booking{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return err
			}
		}
		saved = &booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"%", `\%`,
		"_", `\_`,
	)
	return replacer.Replace(value)
}
