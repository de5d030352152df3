package service

import (
	"context"
	"fmt"
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/admin/model"
	"hotelbooker/internal/domains/admin/model/dto"
	"hotelbooker/internal/domains/admin/repository"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/password"

	"github.com/rs/zerolog/log"
)

type Admin interface {
	Create(ctx context.Context, req dto.CreateAdminRequest) (dto.AdminResponse, error)
}

type serviceImpl struct {
	repo repository.Admin
	otel otel.Otel
}

func New(repo repository.Admin, otel otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAdminRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := dto.NormalizeEmail(req.Email)

	taken, err := s.repo.Exist(ctx, shared.FilterByID(email, model.FieldEmail, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check admin email")

		return res, fmt.Errorf("failed to check admin email: %w", err)
	}

	if taken {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := req.ToModel(shared.Actor(ctx), hashed)

	admin.ID, err = s.repo.Insert(ctx, admin)
	if shared.IsUniqueViolation(err) {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create admin")

		return res, fmt.Errorf("failed to create admin: %w", err)
	}

	res.FromModel(admin)

	return res, nil
}
