package models

import (
	"fmt"
	"strings"
)

// Room is a bookable room. ID is assigned by the store on insert.
type Room struct {
	ID          uint       `json:"id" gorm:"column:id;primaryKey"`
	Type        RoomType   `json:"type" gorm:"column:type;type:varchar(32);not null"`
	Status      RoomStatus `json:"status" gorm:"column:status;type:varchar(32);not null;index"`
	PetsAllowed bool       `json:"petsAllowed" gorm:"column:pets_allowed;not null"`
	Description string     `json:"description" gorm:"column:description;type:text"`
}

func (Room) TableName() string {
	return "room"
}

// Validate checks that type and status hold members of their enumerations.
func (r Room) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("invalid room type %q", string(r.Type))
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid room status %q", string(r.Status))
	}
	return nil
}

func (r Room) descriptionOrPlaceholder() string {
	if strings.TrimSpace(r.Description) == "" {
		return "-"
	}
	return r.Description
}

// String renders the room over several lines for detail views.
func (r Room) String() string {
	return fmt.Sprintf("Room ID %d:\nType: %s\nStatus: %s\nPets Allowed: %t\nDescription: %s",
		r.ID, r.Type, r.Status, r.PetsAllowed, r.descriptionOrPlaceholder())
}

// OneLine renders the room on a single line for numbered lists.
func (r Room) OneLine() string {
	return fmt.Sprintf("Room ID %d: Type: %s | Pets Allowed: %t | Status: %s | Description: %s",
		r.ID, r.Type, r.PetsAllowed, r.Status, r.descriptionOrPlaceholder())
}
