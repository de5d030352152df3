package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbooker/infras/otel"
	"hotelbooker/infras/postgres"
	"hotelbooker/internal/domains/booking/model"
	"hotelbooker/shared/constant"
	gDto "hotelbooker/shared/dto"
	"hotelbooker/shared/logger"
	gRepo "hotelbooker/shared/repository"
)

const bookingNumberSequence = "booking_number_seq"

type Booking interface {
	Insert(ctx context.Context, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	NextBookingNumber(ctx context.Context) (int64, error)
	TransitionPayment(ctx context.Context, id int64, from string, fields map[string]any) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// NextBookingNumber draws from a database sequence so concurrent bookings never share a number.
func (r *repositoryImpl) NextBookingNumber(ctx context.Context) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.NextBookingNumber")
	defer scope.End()

	query := fmt.Sprintf("SELECT nextval('%s')", bookingNumberSequence)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var next int64

	if err := r.db.Write.GetContext(ctx, &next, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to allocate booking number: %w", err)
	}

	return next, nil
}

// TransitionPayment updates the booking only while its payment status still equals from.
// It reports false when another writer already moved the booking on.
func (r *repositoryImpl) TransitionPayment(ctx context.Context, id int64, from string, fields map[string]any) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionPayment")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_" + model.FieldPaymentStatus,
				Field:    model.FieldPaymentStatus,
				Value:    from,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	affected, err := r.Update(ctx, fields, filter)
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}
