package dto

import (
	"hotelbooker/internal/domains/hoteluser/model"
	"hotelbooker/shared/constant"
	gModel "hotelbooker/shared/model"
	"hotelbooker/shared/timezone"
)

type CreateHotelUserRequest struct {
	HotelID  int64  `json:"hotelId"  validate:"required,gt=0"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=staff manager"`
}

func (c *CreateHotelUserRequest) ToModel(user, hashedPassword string) model.HotelUser {
	role := c.Role
	if role == constant.Empty {
		role = constant.RoleStaff
	}

	return model.HotelUser{
		HotelID:  c.HotelID,
		Username: c.Username,
		Password: hashedPassword,
		Role:     role,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

// HotelUserResponse never carries the password hash.
type HotelUserResponse struct {
	ID        int64  `json:"id"`
	HotelID   int64  `json:"hotelId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func (r *HotelUserResponse) FromModel(model model.HotelUser) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Username = model.Username
	r.Role = model.Role
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

func FromModels(models []model.HotelUser) []HotelUserResponse {
	res := make([]HotelUserResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
