package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"minka/config"
	kafkaInfra "minka/infras/kafka"
	kafkaMocks "minka/infras/kafka/mocks"
	"minka/infras/otel/mocks"
	"minka/infras/payment"
	paymentMocks "minka/infras/payment/mocks"
	houseMocks "minka/internal/domains/house/mocks"
	houseModel "minka/internal/domains/house/model"
	reservationMocks "minka/internal/domains/reservation/mocks"
	"minka/internal/domains/reservation/model"
	"minka/internal/domains/reservation/model/dto"
	"minka/internal/domains/reservation/service"
	cacheMocks "minka/shared/cache/mocks"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
)

type reservationFixture struct {
	repo      *reservationMocks.MockReservation
	houseRepo *houseMocks.MockHouse
	cache     *cacheMocks.MockRedisCache
	payment   *paymentMocks.MockGateway
	broker    *kafkaMocks.MockClient
	svc       service.Reservation
}

func newReservationFixture(t *testing.T) reservationFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := reservationMocks.NewMockReservation(ctrl)
	mockHouseRepo := houseMocks.NewMockHouse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPayment := paymentMocks.NewMockGateway(ctrl)
	mockBroker := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	return reservationFixture{
		repo:      repo,
		houseRepo: mockHouseRepo,
		cache:     mockCache,
		payment:   mockPayment,
		broker:    mockBroker,
		svc:       service.New(repo, mockHouseRepo, cfg, mockCache, mockOtel, mockPayment, mockBroker),
	}
}

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

var testHouse = houseModel.House{
	ID:       "house-1",
	Name:     "Lakeside Cabin",
	Price:    10000,
	Capacity: 4,
}

func TestReservationService_Quote(t *testing.T) {
	f := newReservationFixture(t)

	req := dto.InputReservationRequest{
		CheckinDate:    "2024-01-01",
		CheckoutDate:   "2024-01-04",
		NumberOfPeople: 2,
	}

	t.Run("three night stay priced", func(t *testing.T) {
		f.houseRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testHouse, nil)

		res, err := f.svc.Quote(context.Background(), "house-1", req)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, 30000, res.Amount)
	})

	t.Run("house not found", func(t *testing.T) {
		f.houseRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(houseModel.House{}, nil)

		_, err := f.svc.Quote(context.Background(), "missing", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("party larger than capacity", func(t *testing.T) {
		f.houseRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testHouse, nil)

		tooMany := req
		tooMany.NumberOfPeople = 5

		_, err := f.svc.Quote(context.Background(), "house-1", tooMany)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

		fields := failure.GetFields(err)
		assert.Len(t, fields, 1)
		assert.Equal(t, "number_of_people", fields[0].Field)
	})

	t.Run("checkout not after checkin", func(t *testing.T) {
		f.houseRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testHouse, nil)

		sameDay := req
		sameDay.CheckoutDate = sameDay.CheckinDate

		_, err := f.svc.Quote(context.Background(), "house-1", sameDay)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestReservationService_Confirm(t *testing.T) {
	f := newReservationFixture(t)

	req := dto.InputReservationRequest{
		CheckinDate:    "2024-01-01",
		CheckoutDate:   "2024-01-04",
		NumberOfPeople: 2,
	}

	t.Run("checkout session created", func(t *testing.T) {
		f.houseRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testHouse, nil)

		f.payment.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input payment.CheckoutInput) (*payment.CheckoutSession, error) {
				assert.Equal(t, int64(30000), input.Amount)
				assert.Equal(t, "house-1", input.Metadata[dto.MetadataKeyHouseID])
				assert.Equal(t, "user-1", input.Metadata[dto.MetadataKeyUserID])
				assert.Equal(t, "30000", input.Metadata[dto.MetadataKeyAmount])

				return &payment.CheckoutSession{ID: "cs_123", URL: "https://pay.example.com/cs_123"}, nil
			})

		res, err := f.svc.Confirm(userContext("user-1"), "house-1", req)

		assert.NoError(t, err)
		assert.Equal(t, "cs_123", res.SessionID)
		assert.Equal(t, "https://pay.example.com/cs_123", res.PaymentURL)
		assert.Equal(t, 30000, res.Amount)
	})

	t.Run("provider failure maps to bad gateway", func(t *testing.T) {
		f.houseRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testHouse, nil)

		f.payment.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("stripe unavailable"))

		_, err := f.svc.Confirm(userContext("user-1"), "house-1", req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})
}

func TestReservationService_HandlePaymentWebhook(t *testing.T) {
	f := newReservationFixture(t)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	metadata := map[string]string{
		dto.MetadataKeyHouseID:        "house-1",
		dto.MetadataKeyUserID:         "user-1",
		dto.MetadataKeyCheckinDate:    "2024-01-01",
		dto.MetadataKeyCheckoutDate:   "2024-01-04",
		dto.MetadataKeyNumberOfPeople: "2",
		dto.MetadataKeyAmount:         "30000",
	}

	t.Run("invalid signature rejected", func(t *testing.T) {
		f.payment.EXPECT().
			VerifyWebhook(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("bad signature"))

		err := f.svc.HandlePaymentWebhook(context.Background(), []byte("{}"), "sig")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unrelated event ignored", func(t *testing.T) {
		f.payment.EXPECT().
			VerifyWebhook(gomock.Any(), gomock.Any()).
			Return(&payment.WebhookEvent{Type: "charge.refunded"}, nil)

		assert.NoError(t, f.svc.HandlePaymentWebhook(context.Background(), []byte("{}"), "sig"))
	})

	t.Run("completed session stored and event published", func(t *testing.T) {
		f.payment.EXPECT().
			VerifyWebhook(gomock.Any(), gomock.Any()).
			Return(&payment.WebhookEvent{
				Type:      payment.EventCheckoutCompleted,
				SessionID: "cs_123",
				Metadata:  metadata,
			}, nil)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.Reservation) error {
				assert.Equal(t, "house-1", mod.HouseID)
				assert.Equal(t, "user-1", mod.UserID)
				assert.Equal(t, 30000, mod.Amount)
				assert.Equal(t, "cs_123", mod.PaymentSessionID)

				return nil
			})

		f.broker.EXPECT().
			SendMessages(gomock.Any(), constant.KafkaTopicReservationConfirmed, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafkaInfra.Message) error {
				assert.Len(t, messages, 1)

				event, ok := messages[0].Value.(dto.ReservationConfirmedEvent)
				assert.True(t, ok)
				assert.Equal(t, "house-1", event.HouseID)
				assert.Equal(t, 30000, event.Amount)

				return nil
			})

		assert.NoError(t, f.svc.HandlePaymentWebhook(context.Background(), []byte("{}"), "sig"))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("redelivered session is a no-op", func(t *testing.T) {
		f.payment.EXPECT().
			VerifyWebhook(gomock.Any(), gomock.Any()).
			Return(&payment.WebhookEvent{
				Type:      payment.EventCheckoutCompleted,
				SessionID: "cs_123",
				Metadata:  metadata,
			}, nil)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.NoError(t, f.svc.HandlePaymentWebhook(context.Background(), []byte("{}"), "sig"))
	})
}

func TestReservationService_GetMy(t *testing.T) {
	f := newReservationFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	checkin, _ := time.Parse("2006-01-02", "2024-01-01")
	checkout, _ := time.Parse("2006-01-02", "2024-01-04")

	reservations := []model.Reservation{
		{
			ID:             "reservation-1",
			HouseID:        "house-1",
			UserID:         "user-1",
			CheckinDate:    checkin,
			CheckoutDate:   checkout,
			NumberOfPeople: 2,
			Amount:         30000,
			HouseName:      "Lakeside Cabin",
		},
	}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, "reservations.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return reservations, nil
		})

	res, err := f.svc.GetMy(userContext("user-1"), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Reservations, 1)
	assert.Equal(t, "Lakeside Cabin", res.Reservations[0].HouseName)
	assert.Equal(t, "2024-01-01", res.Reservations[0].CheckinDate)

	time.Sleep(10 * time.Millisecond)
}
