package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"room-reservation/models"
)

// Prompter is the operator-facing side of the admin workflow.
type Prompter interface {
	// Choose shows numbered options and returns the 0-based index picked.
	Choose(prompt string, options []string) (int, error)
	Notify(message string)
}

const (
	msgListFailed   = "System error: Could not retrieve rooms."
	msgUpdateFailed = "System error: Could not update room."
)

const (
	fieldRoomType = iota
	fieldPetsAllowed
	fieldStatus
	fieldExit
)

var modifyMenu = []string{
	"Room type",
	"Pets allowed",
	"Status",
	"Exit modification menu",
}

var petPolicyOptions = []models.Option[bool]{
	{Label: "Allowed", Value: true},
	{Label: "Not Allowed", Value: false},
}

// AdminRoomService lets an operator change one field of a room at a time.
type AdminRoomService struct {
	Rooms  RoomRepository
	Prompt Prompter
	Log    *zap.Logger
}

func NewAdminRoomService(rooms RoomRepository, prompt Prompter, log *zap.Logger) *AdminRoomService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminRoomService{Rooms: rooms, Prompt: prompt, Log: log}
}

// ModifyRoom runs the modification session until the operator exits. It
// returns an error when rooms cannot be listed or input cannot be read;
// failed updates are reported to the operator and the session continues.
func (s *AdminRoomService) ModifyRoom(ctx context.Context) error {
	rooms, err := s.Rooms.ListAll(ctx)
	if err != nil {
		s.Prompt.Notify(msgListFailed)
		return err
	}
	if len(rooms) == 0 {
		s.Prompt.Notify("No rooms to modify.")
		return nil
	}

	lines := make([]string, len(rooms))
	for i, r := range rooms {
		lines[i] = r.OneLine()
	}
	idx, err := s.Prompt.Choose("Choose room to modify: ", lines)
	if err != nil {
		return err
	}
	room := rooms[idx]

	s.Prompt.Notify(fmt.Sprintf("Modifying Room ID %d...\n", room.ID))

	for {
		field, err := s.Prompt.Choose("Choose a modification:", modifyMenu)
		if err != nil {
			return err
		}

		switch field {
		case fieldExit:
			return nil
		case fieldRoomType:
			err = s.changeType(ctx, &room)
		case fieldPetsAllowed:
			err = s.changePetPolicy(ctx, &room)
		case fieldStatus:
			err = s.changeStatus(ctx, &room)
		}
		if err != nil {
			return err
		}
	}
}

func (s *AdminRoomService) changeType(ctx context.Context, room *models.Room) error {
	s.Prompt.Notify("Modifying room type...\n")
	idx, err := s.Prompt.Choose("Select new room type:", models.Labels(models.RoomTypeOptions))
	if err != nil {
		return err
	}

	next := *room
	next.Type = models.RoomTypeOptions[idx].Value
	if s.apply(ctx, room, next) {
		s.Prompt.Notify(fmt.Sprintf("Room %d type changed to %s.\n", room.ID, room.Type))
	}
	return nil
}

func (s *AdminRoomService) changePetPolicy(ctx context.Context, room *models.Room) error {
	s.Prompt.Notify("Modifying pet policy...\n")
	idx, err := s.Prompt.Choose("Select new policy:", models.Labels(petPolicyOptions))
	if err != nil {
		return err
	}

	next := *room
	next.PetsAllowed = petPolicyOptions[idx].Value
	if s.apply(ctx, room, next) {
		s.Prompt.Notify(fmt.Sprintf("Room %d pet policy changed to %t.\n", room.ID, room.PetsAllowed))
	}
	return nil
}

func (s *AdminRoomService) changeStatus(ctx context.Context, room *models.Room) error {
	s.Prompt.Notify("Modifying status...\n")
	idx, err := s.Prompt.Choose("Set new status:", models.Labels(models.RoomStatusOptions))
	if err != nil {
		return err
	}

	next := *room
	next.Status = models.RoomStatusOptions[idx].Value
	if s.apply(ctx, room, next) {
		s.Prompt.Notify(fmt.Sprintf("Room %d status changed to %s.\n", room.ID, room.Status))
	}
	return nil
}

// apply persists next and, only on success, copies it into room.
func (s *AdminRoomService) apply(ctx context.Context, room *models.Room, next models.Room) bool {
	matched, err := s.Rooms.Update(ctx, next)
	if err != nil {
		s.Log.Error("room update failed", zap.Uint("room_id", next.ID), zap.Error(err))
		s.Prompt.Notify(msgUpdateFailed)
		return false
	}
	if !matched {
		s.Log.Warn("room update matched no row", zap.Uint("room_id", next.ID))
		s.Prompt.Notify(msgUpdateFailed)
		return false
	}
	*room = next
	return true
}
