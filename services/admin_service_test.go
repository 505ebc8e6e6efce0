package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-reservation/models"
)

type scriptedPrompter struct {
	answers  []int
	prompts  []string
	options  [][]string
	messages []string
}

func (p *scriptedPrompter) Choose(prompt string, options []string) (int, error) {
	p.prompts = append(p.prompts, prompt)
	p.options = append(p.options, options)
	if len(p.answers) == 0 {
		return 0, io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Notify(message string) {
	p.messages = append(p.messages, message)
}

type fakeRooms struct {
	rooms     []models.Room
	listErr   error
	updateErr error
	noMatch   bool
	updates   []models.Room
}

func (f *fakeRooms) ListAll(ctx context.Context) ([]models.Room, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Room(nil), f.rooms...), nil
}

func (f *fakeRooms) GetByID(ctx context.Context, id uint) (models.Room, bool, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			return r, true, nil
		}
	}
	return models.Room{}, false, nil
}

func (f *fakeRooms) Create(ctx context.Context, room models.Room) (models.Room, error) {
	room.ID = uint(len(f.rooms) + 1)
	f.rooms = append(f.rooms, room)
	return room, nil
}

func (f *fakeRooms) Update(ctx context.Context, room models.Room) (bool, error) {
	f.updates = append(f.updates, room)
	if f.updateErr != nil {
		return false, f.updateErr
	}
	if f.noMatch {
		return false, nil
	}
	for i := range f.rooms {
		if f.rooms[i].ID == room.ID {
			f.rooms[i] = room
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRooms) Delete(ctx context.Context, id uint) (bool, error) {
	for i, r := range f.rooms {
		if r.ID == id {
			f.rooms = append(f.rooms[:i], f.rooms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRooms) GetAvailable(ctx context.Context, start, end time.Time) ([]models.Room, error) {
	return nil, nil
}

func sampleRooms() []models.Room {
	return []models.Room{
		{ID: 1, Type: models.RoomTypeSingle, Status: models.RoomStatusAvailable},
		{ID: 7, Type: models.RoomTypeDouble, Status: models.RoomStatusAvailable, PetsAllowed: true},
	}
}

func TestModifyRoom_ListFailureAborts(t *testing.T) {
	rooms := &fakeRooms{listErr: errors.New("store down")}
	prompt := &scriptedPrompter{}

	err := NewAdminRoomService(rooms, prompt, nil).ModifyRoom(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"System error: Could not retrieve rooms."}, prompt.messages)
	assert.Empty(t, prompt.prompts)
}

func TestModifyRoom_ExitWithoutChanges(t *testing.T) {
	rooms := &fakeRooms{rooms: sampleRooms()}
	prompt := &scriptedPrompter{answers: []int{1, fieldExit}}

	err := NewAdminRoomService(rooms, prompt, nil).ModifyRoom(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rooms.updates)
	require.Len(t, prompt.options, 2)
	assert.Equal(t, sampleRooms()[1].OneLine(), prompt.options[0][1])
	assert.Equal(t, modifyMenu, prompt.options[1])
}

func TestModifyRoom_ChangesEachField(t *testing.T) {
	rooms := &fakeRooms{rooms: sampleRooms()}
	prompt := &scriptedPrompter{answers: []int{
		1,                       // room ID 7
		fieldRoomType, 2,        // Suite
		fieldPetsAllowed, 1,     // Not Allowed
		fieldStatus, 3,          // Maintenance
		fieldExit,
	}}

	err := NewAdminRoomService(rooms, prompt, nil).ModifyRoom(context.Background())
	require.NoError(t, err)

	require.Len(t, rooms.updates, 3)
	assert.Equal(t, models.RoomTypeSuite, rooms.updates[0].Type)
	assert.True(t, rooms.updates[0].PetsAllowed)
	assert.False(t, rooms.updates[1].PetsAllowed)
	assert.Equal(t, models.RoomTypeSuite, rooms.updates[1].Type, "later updates carry earlier changes")
	assert.Equal(t, models.RoomStatusMaintenance, rooms.updates[2].Status)

	assert.Equal(t, models.Room{ID: 7, Type: models.RoomTypeSuite, Status: models.RoomStatusMaintenance}, rooms.rooms[1])

	assert.Contains(t, prompt.messages, "Room 7 type changed to Suite.\n")
	assert.Contains(t, prompt.messages, "Room 7 pet policy changed to false.\n")
	assert.Contains(t, prompt.messages, "Room 7 status changed to Maintenance.\n")

	assert.Equal(t, models.Labels(models.RoomTypeOptions), prompt.options[2])
	assert.Equal(t, []string{"Allowed", "Not Allowed"}, prompt.options[4])
	assert.Equal(t, models.Labels(models.RoomStatusOptions), prompt.options[6])
}

func TestModifyRoom_FailedUpdateIsReportedAndLoopContinues(t *testing.T) {
	rooms := &fakeRooms{rooms: sampleRooms(), updateErr: errors.New("deadlock")}
	prompt := &scriptedPrompter{answers: []int{
		0,
		fieldStatus, 1,   // Occupied, fails
		fieldRoomType, 3, // Family, fails
		fieldExit,
	}}

	err := NewAdminRoomService(rooms, prompt, nil).ModifyRoom(context.Background())
	require.NoError(t, err)

	require.Len(t, rooms.updates, 2)
	assert.Equal(t, models.RoomStatusOccupied, rooms.updates[0].Status)
	assert.Equal(t, models.RoomStatusAvailable, rooms.updates[1].Status,
		"a failed change is not kept on the selected room")
	assert.Equal(t, models.RoomTypeFamily, rooms.updates[1].Type)

	failures := 0
	for _, m := range prompt.messages {
		if m == "System error: Could not update room." {
			failures++
		}
	}
	assert.Equal(t, 2, failures)
}

func TestModifyRoom_NoMatchIsReportedAsFailure(t *testing.T) {
	rooms := &fakeRooms{rooms: sampleRooms(), noMatch: true}
	prompt := &scriptedPrompter{answers: []int{0, fieldPetsAllowed, 0, fieldExit}}

	err := NewAdminRoomService(rooms, prompt, nil).ModifyRoom(context.Background())
	require.NoError(t, err)

	assert.Contains(t, prompt.messages, "System error: Could not update room.")
	assert.NotContains(t, prompt.messages, "Room 1 pet policy changed to true.\n")
}

func TestModifyRoom_InputErrorEndsSession(t *testing.T) {
	rooms := &fakeRooms{rooms: sampleRooms()}
	prompt := &scriptedPrompter{answers: []int{0, fieldRoomType}}

	err := NewAdminRoomService(rooms, prompt, nil).ModifyRoom(context.Background())

	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, rooms.updates)
}

func TestModifyRoom_NoRooms(t *testing.T) {
	prompt := &scriptedPrompter{}

	err := NewAdminRoomService(&fakeRooms{}, prompt, nil).ModifyRoom(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"No rooms to modify."}, prompt.messages)
}
