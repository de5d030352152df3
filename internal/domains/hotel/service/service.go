package service

import (
	"context"
	stdBase64 "encoding/base64"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/otel"
	"hotelbooker/infras/s3"
	"hotelbooker/internal/domains/hotel/model"
	"hotelbooker/internal/domains/hotel/model/dto"
	"hotelbooker/internal/domains/hotel/repository"
	"hotelbooker/shared"
	"hotelbooker/shared/base64"
	"hotelbooker/shared/cache"
	"hotelbooker/shared/constant"
	gDto "hotelbooker/shared/dto"
	"hotelbooker/shared/failure"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheGetAllHotel = "hotel:gets"

	photoDirectory = "hotels"
)

type Hotel interface {
	Create(ctx context.Context, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error)
	Get(ctx context.Context, id int64) (dto.HotelResponse, error)
	Update(ctx context.Context, req dto.UpdateHotelRequest, id int64) (dto.HotelResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo    repository.Hotel
	storage s3.S3
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Hotel, storage s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Hotel {
	return &serviceImpl{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Photo, err = s.storePhoto(ctx, req.Photo)
	if err != nil {
		return res, err
	}

	hotel := req.ToModel(shared.Actor(ctx))

	hotel.ID, err = s.repo.Insert(ctx, hotel)
	if err != nil {
		log.Error().Err(err).Msg("failed to create hotel")

		return res, fmt.Errorf("failed to create hotel: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
	}()

	res.FromModel(hotel)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHotel, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotels")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotels to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return res, failure.HotelNotFound // nolint:wrapcheck
	}

	res.FromModel(hotel)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHotelRequest, id int64) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	req.Photo, err = s.storePhoto(ctx, req.Photo)
	if err != nil {
		return res, err
	}

	affected, err := s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update hotel")

		return res, fmt.Errorf("failed to update hotel: %w", err)
	}

	if affected == 0 {
		return res, failure.HotelNotFound // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	hotel, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated hotel")

		return res, fmt.Errorf("failed to get updated hotel: %w", err)
	}

	res.FromModel(hotel)

	return res, nil
}

// Delete removes the hotel row only. Bookings referencing it are kept.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	hotel, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldPhoto)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return failure.HotelNotFound // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete hotel")

		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	if !deleted {
		return failure.HotelNotFound // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	if objectKey := s.storage.GetObjectKeyFromURL(hotel.Photo); objectKey != constant.Empty {
		go func() {
			if err := s.storage.DeleteFile(context.WithoutCancel(ctx), constant.Empty, objectKey); err != nil {
				log.Error().Err(err).Str("key", objectKey).Msg("failed to remove hotel photo")
			}
		}()
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete hotel from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
	}()
}

// storePhoto uploads data URI photos and returns their public URL.
// Plain URLs and empty values pass through unchanged.
func (s *serviceImpl) storePhoto(ctx context.Context, photo string) (string, error) {
	contentType := base64.GetContentType(photo)
	if contentType == constant.Empty {
		return photo, nil
	}

	if !strings.HasPrefix(contentType, "image/") {
		return constant.Empty, failure.BadRequestFromString("photo must be an image") // nolint:wrapcheck
	}

	encoded := photo[strings.Index(photo, base64.Marker)+len(base64.Marker):]

	data, err := stdBase64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("photo is not valid base64") // nolint:wrapcheck
	}

	fileName := uuid.NewString() + base64.Extension(contentType)

	url, err := s.storage.UploadFileBytes(ctx, constant.Empty, photoDirectory, fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hotel photo")

		return constant.Empty, fmt.Errorf("failed to upload hotel photo: %w", err)
	}

	return url, nil
}
