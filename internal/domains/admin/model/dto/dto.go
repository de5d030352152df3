package dto

import (
	"hotelbooker/internal/domains/admin/model"
	"hotelbooker/shared/constant"
	gModel "hotelbooker/shared/model"
	"hotelbooker/shared/timezone"
	"strings"
)

type CreateAdminRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *CreateAdminRequest) ToModel(user, hashedPassword string) model.Admin {
	return model.Admin{
		Email:    NormalizeEmail(c.Email),
		Password: hashedPassword,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type AdminResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func (r *AdminResponse) FromModel(model model.Admin) {
	r.ID = model.ID
	r.Email = model.Email
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
