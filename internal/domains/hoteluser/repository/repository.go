package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbooker/infras/otel"
	"hotelbooker/infras/postgres"
	"hotelbooker/internal/domains/hoteluser/model"
	gDto "hotelbooker/shared/dto"
	gRepo "hotelbooker/shared/repository"
)

type HotelUser interface {
	Insert(ctx context.Context, model model.HotelUser) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.HotelUser, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.HotelUser, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.HotelUser]
}

func New(db *postgres.Connection, otel otel.Otel) HotelUser {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.HotelUser](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
