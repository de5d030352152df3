package model

import "hotelbooker/shared/model"

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
)

type Admin struct {
	ID       int64  `db:"id"`
	Email    string `db:"email"`
	Password string `db:"password"`
	model.Metadata
}
