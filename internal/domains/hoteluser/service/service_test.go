package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbooker/infras/otel/mocks"
	hotelMocks "hotelbooker/internal/domains/hotel/mocks"
	userMocks "hotelbooker/internal/domains/hoteluser/mocks"
	"hotelbooker/internal/domains/hoteluser/model"
	"hotelbooker/internal/domains/hoteluser/model/dto"
	"hotelbooker/internal/domains/hoteluser/service"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/password"
)

func TestHotelUserService_Create(t *testing.T) {
	req := dto.CreateHotelUserRequest{HotelID: 1, Username: "frontdesk", Password: "supersecret"}

	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockHotelUser, hotels *hotelMocks.MockHotel)
		wantCode  int
	}{
		{
			name: "missing hotel",
			setupMock: func(_ *userMocks.MockHotelUser, hotels *hotelMocks.MockHotel) {
				hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
		{
			name: "username taken",
			setupMock: func(repo *userMocks.MockHotelUser, hotels *hotelMocks.MockHotel) {
				hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
		{
			name: "username taken by concurrent insert",
			setupMock: func(repo *userMocks.MockHotelUser, hotels *hotelMocks.MockHotel) {
				hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), &pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: 409,
		},
		{
			name: "store failure",
			setupMock: func(_ *userMocks.MockHotelUser, hotels *hotelMocks.MockHotel) {
				hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockHotelUser(ctrl)
			hotels := hotelMocks.NewMockHotel(ctrl)

			tt.setupMock(repo, hotels)

			svc := service.New(repo, hotels, mocks.NewOtel())
			_, err := svc.Create(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestHotelUserService_CreateHashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockHotelUser(ctrl)
	hotels := hotelMocks.NewMockHotel(ctrl)

	hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user model.HotelUser) (int64, error) {
			assert.NotEqual(t, "supersecret", user.Password)
			assert.NoError(t, password.Verify("supersecret", user.Password))
			assert.Equal(t, constant.RoleStaff, user.Role)

			return 4, nil
		})

	svc := service.New(repo, hotels, mocks.NewOtel())
	res, err := svc.Create(context.Background(), dto.CreateHotelUserRequest{HotelID: 1, Username: "frontdesk", Password: "supersecret"})

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.ID)
	assert.Equal(t, "frontdesk", res.Username)
}

func TestHotelUserService_ListByHotel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockHotelUser(ctrl)
	hotels := hotelMocks.NewMockHotel(ctrl)

	hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.HotelUser{{ID: 1, HotelID: 2, Username: "a", Password: "hash"}}, nil)

	svc := service.New(repo, hotels, mocks.NewOtel())
	res, err := svc.ListByHotel(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "a", res[0].Username)
}
