package service

import (
	"context"
	"fmt"
	"hotelbooker/infras/jwt"
	"hotelbooker/infras/otel"
	adminModel "hotelbooker/internal/domains/admin/model"
	adminDto "hotelbooker/internal/domains/admin/model/dto"
	adminRepo "hotelbooker/internal/domains/admin/repository"
	"hotelbooker/internal/domains/auth/model/dto"
	hotelModel "hotelbooker/internal/domains/hotel/model"
	hotelRepo "hotelbooker/internal/domains/hotel/repository"
	hotelUserModel "hotelbooker/internal/domains/hoteluser/model"
	hotelUserRepo "hotelbooker/internal/domains/hoteluser/repository"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/password"
	"strconv"

	"github.com/rs/zerolog/log"
)

const errInvalidCredentials = "invalid credentials"

type Auth interface {
	HotelLogin(ctx context.Context, req dto.HotelLoginRequest) (dto.HotelLoginResponse, error)
	AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (dto.AdminLoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	hotelUserRepo hotelUserRepo.HotelUser
	hotelRepo     hotelRepo.Hotel
	adminRepo     adminRepo.Admin
	otel          otel.Otel
	jwtService    jwt.JWT
}

func New(hotelUserRepo hotelUserRepo.HotelUser, hotelRepo hotelRepo.Hotel, adminRepo adminRepo.Admin, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		hotelUserRepo: hotelUserRepo,
		hotelRepo:     hotelRepo,
		adminRepo:     adminRepo,
		otel:          otel,
		jwtService:    jwt,
	}
}

// HotelLogin authenticates a hotel staff account. No state is written on failure.
func (s *serviceImpl) HotelLogin(ctx context.Context, req dto.HotelLoginRequest) (res dto.HotelLoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HotelLogin")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.hotelUserRepo.Get(ctx, shared.FilterByID(req.Username, hotelUserModel.FieldUsername, hotelUserModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel user")

		return res, fmt.Errorf("failed to get hotel user: %w", err)
	}

	if user.ID == 0 {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(user.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return res, failure.HotelNotFound // nolint:wrapcheck
	}

	userID := strconv.FormatInt(user.ID, 10)
	hotelID := strconv.FormatInt(hotel.ID, 10)

	tokenPair, err := s.jwtService.GenerateTokenPair(userID, user.Username, user.Role, hotelID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.User.FromModel(user)
	res.Hotel.FromModel(hotel)
	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (res dto.AdminLoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminLogin")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := adminDto.NormalizeEmail(req.Email)

	admin, err := s.adminRepo.Get(ctx, shared.FilterByID(email, adminModel.FieldEmail, adminModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == 0 {
		log.Warn().Str("email", email).Msg("login attempt with unknown email")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(strconv.FormatInt(admin.ID, 10), admin.Email, constant.RoleAdmin, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.Admin.FromModel(admin)
	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
