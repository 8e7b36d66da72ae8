package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"minka/internal/domains/reservation/model"
	"minka/shared"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
	gModel "minka/shared/model"
	"minka/shared/timezone"
)

// Metadata keys attached to the checkout session so the webhook can rebuild
// the reservation without any server-side session state.
const (
	MetadataKeyHouseID        = "house_id"
	MetadataKeyUserID         = "user_id"
	MetadataKeyCheckinDate    = "checkin_date"
	MetadataKeyCheckoutDate   = "checkout_date"
	MetadataKeyNumberOfPeople = "number_of_people"
	MetadataKeyAmount         = "amount"
)

type InputReservationRequest struct {
	CheckinDate    string `json:"checkin_date" validate:"required,datetime=2006-01-02"`
	CheckoutDate   string `json:"checkout_date" validate:"required,datetime=2006-01-02"`
	NumberOfPeople int    `json:"number_of_people" validate:"required,min=1"`
}

// ParseDates interprets both dates in the service timezone. Format errors
// surface as per-field validation failures.
func (r *InputReservationRequest) ParseDates() (checkin, checkout time.Time, err error) {
	checkin, err = timezone.Parse(constant.DateOnlyFormat, r.CheckinDate)
	if err != nil {
		return checkin, checkout, failure.Validation(failure.FieldError{
			Field:   MetadataKeyCheckinDate,
			Message: "checkin date must use the YYYY-MM-DD format",
		})
	}

	checkout, err = timezone.Parse(constant.DateOnlyFormat, r.CheckoutDate)
	if err != nil {
		return checkin, checkout, failure.Validation(failure.FieldError{
			Field:   MetadataKeyCheckoutDate,
			Message: "checkout date must use the YYYY-MM-DD format",
		})
	}

	return checkin, checkout, nil
}

// ToMetadata flattens the reservation input into checkout session metadata.
func (r *InputReservationRequest) ToMetadata(houseID, userID string, amount int) map[string]string {
	return map[string]string{
		MetadataKeyHouseID:        houseID,
		MetadataKeyUserID:         userID,
		MetadataKeyCheckinDate:    r.CheckinDate,
		MetadataKeyCheckoutDate:   r.CheckoutDate,
		MetadataKeyNumberOfPeople: strconv.Itoa(r.NumberOfPeople),
		MetadataKeyAmount:         strconv.Itoa(amount),
	}
}

// FromMetadata rebuilds the reservation persisted on payment completion from
// the metadata echoed back by the provider.
func FromMetadata(sessionID string, metadata map[string]string) (model.Reservation, error) {
	checkin, err := timezone.Parse(constant.DateOnlyFormat, metadata[MetadataKeyCheckinDate])
	if err != nil {
		return model.Reservation{}, fmt.Errorf("invalid checkin date in session metadata: %w", err)
	}

	checkout, err := timezone.Parse(constant.DateOnlyFormat, metadata[MetadataKeyCheckoutDate])
	if err != nil {
		return model.Reservation{}, fmt.Errorf("invalid checkout date in session metadata: %w", err)
	}

	numberOfPeople, err := strconv.Atoi(metadata[MetadataKeyNumberOfPeople])
	if err != nil {
		return model.Reservation{}, fmt.Errorf("invalid number of people in session metadata: %w", err)
	}

	amount, err := strconv.Atoi(metadata[MetadataKeyAmount])
	if err != nil {
		return model.Reservation{}, fmt.Errorf("invalid amount in session metadata: %w", err)
	}

	userID := metadata[MetadataKeyUserID]

	return model.Reservation{
		ID:               uuid.NewString(),
		HouseID:          metadata[MetadataKeyHouseID],
		UserID:           userID,
		CheckinDate:      checkin,
		CheckoutDate:     checkout,
		NumberOfPeople:   numberOfPeople,
		Amount:           amount,
		PaymentSessionID: sessionID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

type QuoteReservationResponse struct {
	Nights int `json:"nights"`
	Amount int `json:"amount"`
}

type ConfirmReservationResponse struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
	Amount     int    `json:"amount"`
}

type ReservationResponse struct {
	ID             string `json:"id"`
	HouseID        string `json:"house_id"`
	HouseName      string `json:"house_name"`
	CheckinDate    string `json:"checkin_date"`
	CheckoutDate   string `json:"checkout_date"`
	NumberOfPeople int    `json:"number_of_people"`
	Amount         int    `json:"amount"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.HouseID = model.HouseID
	r.HouseName = model.HouseName
	r.CheckinDate = model.CheckinDate.Format(constant.DateOnlyFormat)
	r.CheckoutDate = model.CheckoutDate.Format(constant.DateOnlyFormat)
	r.NumberOfPeople = model.NumberOfPeople
	r.Amount = model.Amount
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// ReservationConfirmedEvent is published to Kafka once a paid reservation is
// stored.
type ReservationConfirmedEvent struct {
	ReservationID  string `json:"reservation_id"`
	HouseID        string `json:"house_id"`
	UserID         string `json:"user_id"`
	CheckinDate    string `json:"checkin_date"`
	CheckoutDate   string `json:"checkout_date"`
	NumberOfPeople int    `json:"number_of_people"`
	Amount         int    `json:"amount"`
}

func (e *ReservationConfirmedEvent) FromModel(model model.Reservation) {
	e.ReservationID = model.ID
	e.HouseID = model.HouseID
	e.UserID = model.UserID
	e.CheckinDate = model.CheckinDate.Format(constant.DateOnlyFormat)
	e.CheckoutDate = model.CheckoutDate.Format(constant.DateOnlyFormat)
	e.NumberOfPeople = model.NumberOfPeople
	e.Amount = model.Amount
}
