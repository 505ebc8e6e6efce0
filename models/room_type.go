package models

import (
	"database/sql/driver"
	"fmt"
)

// RoomType is a closed set of room categories, stored by name.
type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeSuite  RoomType = "Suite"
	RoomTypeFamily RoomType = "Family"
)

// RoomStatus is a closed set of operational states, stored by name.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusOccupied    RoomStatus = "Occupied"
	RoomStatusReserved    RoomStatus = "Reserved"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

// Option pairs a menu label with the value it selects.
type Option[T any] struct {
	Label string `json:"label"`
	Value T      `json:"value"`
}

// Menus pick from these lists by index; order is the declaration order.
var (
	RoomTypeOptions = []Option[RoomType]{
		{Label: "Single", Value: RoomTypeSingle},
		{Label: "Double", Value: RoomTypeDouble},
		{Label: "Suite", Value: RoomTypeSuite},
		{Label: "Family", Value: RoomTypeFamily},
	}

	RoomStatusOptions = []Option[RoomStatus]{
		{Label: "Available", Value: RoomStatusAvailable},
		{Label: "Occupied", Value: RoomStatusOccupied},
		{Label: "Reserved", Value: RoomStatusReserved},
		{Label: "Maintenance", Value: RoomStatusMaintenance},
	}
)

// Labels returns the option labels in order.
func Labels[T any](options []Option[T]) []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return labels
}

func (t RoomType) Valid() bool {
	for _, o := range RoomTypeOptions {
		if o.Value == t {
			return true
		}
	}
	return false
}

func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid room type %q", s)
	}
	return t, nil
}

func (t *RoomType) Scan(value any) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("scan room type: %w", err)
	}
	parsed, err := ParseRoomType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t RoomType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid room type %q", string(t))
	}
	return string(t), nil
}

func (s RoomStatus) Valid() bool {
	for _, o := range RoomStatusOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}

func ParseRoomStatus(s string) (RoomStatus, error) {
	st := RoomStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid room status %q", s)
	}
	return st, nil
}

func (s *RoomStatus) Scan(value any) error {
	str, err := scanString(value)
	if err != nil {
		return fmt.Errorf("scan room status: %w", err)
	}
	parsed, err := ParseRoomStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s RoomStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid room status %q", string(s))
	}
	return string(s), nil
}

func scanString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("unexpected NULL")
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
