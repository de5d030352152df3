package dto

import (
	"hotelbooker/infras/jwt"
	adminDto "hotelbooker/internal/domains/admin/model/dto"
	hotelDto "hotelbooker/internal/domains/hotel/model/dto"
	hotelUserDto "hotelbooker/internal/domains/hoteluser/model/dto"
)

type HotelLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *Tokens) FromTokenPair(tokenPair *jwt.TokenPair) {
	t.AccessToken = tokenPair.AccessToken
	t.RefreshToken = tokenPair.RefreshToken
	t.ExpiresIn = tokenPair.ExpiresIn
}

type HotelLoginResponse struct {
	User  hotelUserDto.HotelUserResponse `json:"user"`
	Hotel hotelDto.HotelResponse         `json:"hotel"`
	Tokens
}

type AdminLoginResponse struct {
	Admin adminDto.AdminResponse `json:"admin"`
	Tokens
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	Tokens
}
