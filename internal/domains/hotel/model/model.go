package model

import (
	"hotelbooker/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID        = "id"
	FieldName      = "name"
	FieldLocation  = "location"
	FieldPhoto     = "photo"
	FieldBaseRate  = "base_rate"
	FieldAmenities = "amenities"
	FieldStatus    = "status"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Hotel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Location  string         `db:"location"`
	Photo     string         `db:"photo"`
	BaseRate  int            `db:"base_rate"`
	Amenities pq.StringArray `db:"amenities"`
	Status    string         `db:"status"`
	model.Metadata
}

func (h Hotel) IsActive() bool {
	return h.Status == StatusActive
}
