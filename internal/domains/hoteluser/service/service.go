package service

import (
	"context"
	"fmt"
	"hotelbooker/infras/otel"
	hotelModel "hotelbooker/internal/domains/hotel/model"
	hotelRepo "hotelbooker/internal/domains/hotel/repository"
	"hotelbooker/internal/domains/hoteluser/model"
	"hotelbooker/internal/domains/hoteluser/model/dto"
	"hotelbooker/internal/domains/hoteluser/repository"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	gDto "hotelbooker/shared/dto"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/password"

	"github.com/rs/zerolog/log"
)

type HotelUser interface {
	Create(ctx context.Context, req dto.CreateHotelUserRequest) (dto.HotelUserResponse, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]dto.HotelUserResponse, error)
}

type serviceImpl struct {
	repo      repository.HotelUser
	hotelRepo hotelRepo.Hotel
	otel      otel.Otel
}

func New(repo repository.HotelUser, hotelRepo hotelRepo.Hotel, otel otel.Otel) HotelUser {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelUserRequest) (res dto.HotelUserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateHotelUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureHotel(ctx, req.HotelID); err != nil {
		return res, err
	}

	taken, err := s.repo.Exist(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check username")

		return res, fmt.Errorf("failed to check username: %w", err)
	}

	if taken {
		return res, failure.Conflict("username already exists") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(shared.Actor(ctx), hashed)

	user.ID, err = s.repo.Insert(ctx, user)
	if shared.IsUniqueViolation(err) {
		return res, failure.Conflict("username already exists") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create hotel user")

		return res, fmt.Errorf("failed to create hotel user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ListByHotel(ctx context.Context, hotelID int64) (res []dto.HotelUserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListHotelUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureHotel(ctx, hotelID); err != nil {
		return res, err
	}

	users, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldUsername, SortDir: gDto.SortDirAsc},
		shared.FilterByID(hotelID, model.FieldHotelID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel users")

		return res, fmt.Errorf("failed to get hotel users: %w", err)
	}

	return dto.FromModels(users), nil
}

func (s *serviceImpl) ensureHotel(ctx context.Context, hotelID int64) error {
	exist, err := s.hotelRepo.Exist(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check hotel")

		return fmt.Errorf("failed to check hotel: %w", err)
	}

	if !exist {
		return failure.HotelNotFound // nolint:wrapcheck
	}

	return nil
}

func usernameFilter(username string) gDto.FilterGroup {
	return shared.FilterByID(username, model.FieldUsername, model.TableName)
}
