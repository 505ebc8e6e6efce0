package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"room-reservation/apperrors"
	"room-reservation/models"
)

const selectRoomReservationsSQL = `SELECT id, room_id, start_date, end_date FROM reservation WHERE room_id = ? ORDER BY start_date, id`

// ReservationReader exposes the reservations that block rooms.
type ReservationReader interface {
	ListForRoom(ctx context.Context, roomID uint) ([]models.Reservation, error)
	Conflicts(ctx context.Context, roomID uint, start, end time.Time) ([]models.Reservation, error)
}

// ReservationService only reads reservations; they are written elsewhere.
type ReservationService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewReservationService(db *gorm.DB, log *zap.Logger) *ReservationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReservationService{DB: db, Log: log}
}

var _ ReservationReader = (*ReservationService)(nil)

func (s *ReservationService) ListForRoom(ctx context.Context, roomID uint) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	err := s.DB.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return tx.Raw(selectRoomReservationsSQL, roomID).Scan(&reservations).Error
	})
	if err != nil {
		s.Log.Warn("list reservations failed", zap.Uint("room_id", roomID), zap.Error(err))
		return nil, storeError(err, fmt.Sprintf("failed to list reservations of room %d", roomID))
	}
	return reservations, nil
}

// Conflicts returns the room's reservations overlapping [start, end].
func (s *ReservationService) Conflicts(ctx context.Context, roomID uint, start, end time.Time) ([]models.Reservation, error) {
	rng := models.NewDateRange(start, end)
	if err := rng.Validate(); err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	all, err := s.ListForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	conflicts := []models.Reservation{}
	for _, res := range all {
		if rng.Overlaps(res.Range()) {
			conflicts = append(conflicts, res)
		}
	}
	return conflicts, nil
}
