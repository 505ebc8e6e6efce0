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

const (
	selectRoomsSQL = `SELECT id, type, status, pets_allowed, description FROM room ORDER BY id`

	selectRoomByIDSQL = `SELECT id, type, status, pets_allowed, description FROM room WHERE id = ? LIMIT 1`

	updateRoomSQL = `UPDATE room SET type = ?, status = ?, pets_allowed = ? WHERE id = ?`

	deleteRoomSQL = `DELETE FROM room WHERE id = ?`

	// A reservation [start_date, end_date] blocks the range [?, ?] when
	// neither lies entirely before the other; both ends are inclusive.
	selectAvailableRoomsSQL = `
SELECT id, type, status, pets_allowed, description
FROM room
WHERE room.status = ? AND room.id NOT IN (
	SELECT room_id
	FROM reservation
	WHERE ? <= reservation.end_date AND ? >= reservation.start_date
)
ORDER BY id`
)

// RoomRepository is the persistence surface for rooms.
type RoomRepository interface {
	ListAll(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id uint) (models.Room, bool, error)
	Create(ctx context.Context, room models.Room) (models.Room, error)
	Update(ctx context.Context, room models.Room) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	GetAvailable(ctx context.Context, start, end time.Time) ([]models.Room, error)
}

// RoomService stores rooms in MySQL. Each call borrows one connection from
// the pool for its own duration.
type RoomService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRoomService(db *gorm.DB, log *zap.Logger) *RoomService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomService{DB: db, Log: log}
}

var _ RoomRepository = (*RoomService)(nil)

// withConn runs fn on a dedicated connection that is released when fn returns.
func (s *RoomService) withConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Connection(fn)
}

// checkRows rejects rows whose type or status is not a member of its
// enumeration. NULL columns leave the field empty without calling Scan.
func checkRows(rooms ...models.Room) error {
	for _, r := range rooms {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("room %d: %w", r.ID, err)
		}
	}
	return nil
}

func (s *RoomService) ListAll(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.withConn(ctx, func(tx *gorm.DB) error {
		if err := tx.Raw(selectRoomsSQL).Scan(&rooms).Error; err != nil {
			return err
		}
		return checkRows(rooms...)
	})
	if err != nil {
		s.Log.Warn("list rooms failed", zap.Error(err))
		return nil, storeError(err, "failed to list rooms")
	}
	return rooms, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (models.Room, bool, error) {
	var room models.Room
	var found bool
	err := s.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Raw(selectRoomByIDSQL, id).Scan(&room)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		if !found {
			return nil
		}
		return checkRows(room)
	})
	if err != nil {
		s.Log.Warn("get room failed", zap.Uint("room_id", id), zap.Error(err))
		return models.Room{}, false, storeError(err, fmt.Sprintf("failed to get room %d", id))
	}
	if !found {
		return models.Room{}, false, nil
	}
	return room, true, nil
}

// Create inserts the room and returns it with the store-assigned id. Any id
// on the input is ignored.
func (s *RoomService) Create(ctx context.Context, room models.Room) (models.Room, error) {
	if err := room.Validate(); err != nil {
		return models.Room{}, apperrors.Validation("%v", err)
	}
	room.ID = 0

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Create(&room).Error
	})
	if err != nil {
		s.Log.Warn("create room failed", zap.Error(err))
		return models.Room{}, storeError(err, "failed to create room")
	}

	s.Log.Info("room created", zap.Uint("room_id", room.ID), zap.String("type", string(room.Type)))
	return room, nil
}

// Update overwrites type, status and pet policy of the room with room.ID.
// It reports false when no room has that id.
func (s *RoomService) Update(ctx context.Context, room models.Room) (bool, error) {
	if err := room.Validate(); err != nil {
		return false, apperrors.Validation("%v", err)
	}

	var affected int64
	err := s.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Exec(updateRoomSQL, room.Type, room.Status, room.PetsAllowed, room.ID)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.Log.Warn("update room failed", zap.Uint("room_id", room.ID), zap.Error(err))
		return false, storeError(err, fmt.Sprintf("failed to update room %d", room.ID))
	}
	return affected > 0, nil
}

// Delete removes the room and reports whether it existed.
func (s *RoomService) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := s.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Exec(deleteRoomSQL, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.Log.Warn("delete room failed", zap.Uint("room_id", id), zap.Error(err))
		return false, storeError(err, fmt.Sprintf("failed to delete room %d", id))
	}
	if affected > 0 {
		s.Log.Info("room deleted", zap.Uint("room_id", id))
	}
	return affected > 0, nil
}

// GetAvailable returns rooms with status Available and no reservation
// overlapping [start, end]. The range is checked before touching the store.
func (s *RoomService) GetAvailable(ctx context.Context, start, end time.Time) ([]models.Room, error) {
	rng := models.NewDateRange(start, end)
	if err := rng.Validate(); err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	rooms := []models.Room{}
	err := s.withConn(ctx, func(tx *gorm.DB) error {
		err := tx.Raw(selectAvailableRoomsSQL, models.RoomStatusAvailable,
			rng.Start.Format(models.DateLayout), rng.End.Format(models.DateLayout)).Scan(&rooms).Error
		if err != nil {
			return err
		}
		return checkRows(rooms...)
	})
	if err != nil {
		s.Log.Warn("availability query failed", zap.Stringer("range", rng), zap.Error(err))
		return nil, storeError(err, "failed to query available rooms")
	}
	return rooms, nil
}
