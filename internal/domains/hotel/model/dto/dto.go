package dto

import (
	"hotelbooker/internal/domains/hotel/model"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	gModel "hotelbooker/shared/model"
	"hotelbooker/shared/timezone"

	"github.com/lib/pq"
)

type CreateHotelRequest struct {
	Name      string   `json:"name"      validate:"required,max=150"`
	Location  string   `json:"location"  validate:"required,max=255"`
	Photo     string   `json:"photo"     validate:"omitempty,photo"`
	BaseRate  int      `json:"baseRate"  validate:"gte=0"`
	Amenities []string `json:"amenities" validate:"omitempty,dive,required"`
	Status    string   `json:"status"    validate:"omitempty,oneof=active inactive"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	status := c.Status
	if status == constant.Empty {
		status = model.StatusActive
	}

	amenities := pq.StringArray(c.Amenities)
	if amenities == nil {
		amenities = pq.StringArray{}
	}

	return model.Hotel{
		Name:      c.Name,
		Location:  c.Location,
		Photo:     c.Photo,
		BaseRate:  c.BaseRate,
		Amenities: amenities,
		Status:    status,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateHotelRequest serves both PUT and PATCH; only provided fields change.
type UpdateHotelRequest struct {
	Name      string         `db:"name"      json:"name"      validate:"omitempty,max=150"`
	Location  string         `db:"location"  json:"location"  validate:"omitempty,max=255"`
	Photo     string         `db:"photo"     json:"photo"     validate:"omitempty,photo"`
	BaseRate  *int           `db:"base_rate" json:"baseRate"  validate:"omitempty,gte=0"`
	Amenities pq.StringArray `db:"amenities" json:"amenities" validate:"omitempty,dive,required"`
	Status    string         `db:"status"    json:"status"    validate:"omitempty,oneof=active inactive"`
}

func (u *UpdateHotelRequest) IsEmpty() bool {
	return u.Name == constant.Empty && u.Location == constant.Empty && u.Photo == constant.Empty &&
		u.BaseRate == nil && u.Amenities == nil && u.Status == constant.Empty
}

type HotelResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Photo     string   `json:"photo,omitempty"`
	BaseRate  int      `json:"baseRate"`
	Amenities []string `json:"amenities"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"createdAt"`
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Photo = model.Photo
	r.BaseRate = model.BaseRate
	r.Amenities = []string(model.Amenities)
	r.Status = model.Status
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)

	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"totalPage"`
	TotalData int             `json:"totalData"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
