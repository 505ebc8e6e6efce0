package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reservation is read-only here; rows are written by the booking side.
type Reservation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	RoomID    uint           `gorm:"column:room_id;index;not null" json:"roomId"`
	StartDate datatypes.Date `gorm:"column:start_date;not null" json:"startDate"`
	EndDate   datatypes.Date `gorm:"column:end_date;not null" json:"endDate"`
}

func (Reservation) TableName() string {
	return "reservation"
}

// Range returns the reservation's inclusive date range.
func (r Reservation) Range() DateRange {
	return NewDateRange(time.Time(r.StartDate), time.Time(r.EndDate))
}
