package model

import (
	"time"

	"github.com/nurpe/booking-wizard/internal/pricing"
)

type BookingStatus string

const (
	BookingStatusNew       BookingStatus = "new"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDone      BookingStatus = "done"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// BookingStatuses lists the lifecycle states in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusNew,
	BookingStatusConfirmed,
	BookingStatusDone,
	BookingStatusCanceled,
}

type Booking struct {
	ID                   int64 `gorm:"primaryKey"`
	CreatedAt            time.Time
	Name                 string
	Email                *string
	Phone                string
	ServiceType          string
	Location             string
	PreferredDate        *time.Time `gorm:"type:date"`
	OptionsPhotoReport   bool       `gorm:"column:options_photoreport"`
	OptionsPriorityVisit bool       `gorm:"column:options_priority_visit"`
	OptionsWeekendVisit  bool       `gorm:"column:options_weekend_visit"`
	OptionsExtraStaff    bool       `gorm:"column:options_extra_staff"`
	Message              *string
	EstPrice             int
	Status               BookingStatus
	AdminNote            *string
}

func (Booking) TableName() string {
	return "bookings"
}

// Options returns the stored add-on columns as flags.
func (b Booking) Options() pricing.OptionFlags {
	return pricing.OptionFlags{
		PhotoReport:   b.OptionsPhotoReport,
		PriorityVisit: b.OptionsPriorityVisit,
		WeekendVisit:  b.OptionsWeekendVisit,
		ExtraStaff:    b.OptionsExtraStaff,
	}
}

func (b *Booking) SetOptions(flags pricing.OptionFlags) {
	b.OptionsPhotoReport = flags.PhotoReport
	b.OptionsPriorityVisit = flags.PriorityVisit
	b.OptionsWeekendVisit = flags.WeekendVisit
	b.OptionsExtraStaff = flags.ExtraStaff
}

// BookingFilter narrows the admin list. Empty fields do not filter.
type BookingFilter struct {
	Query  string
	Status BookingStatus
}

// BookingUpdate is a partial admin update; nil fields are left untouched.
type BookingUpdate struct {
	Status *BookingStatus
	Note   *string
}
