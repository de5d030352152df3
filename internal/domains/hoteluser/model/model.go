package model

import "hotelbooker/shared/model"

const (
	TableName  = "hotel_users"
	EntityName = "hotel_user"

	FieldID       = "id"
	FieldHotelID  = "hotel_id"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"
)

type HotelUser struct {
	ID       int64  `db:"id"`
	HotelID  int64  `db:"hotel_id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     string `db:"role"`
	model.Metadata
}
