package model

import (
	"time"

	houseModel "minka/internal/domains/house/model"
	"minka/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID               = "id"
	FieldHouseID          = "house_id"
	FieldUserID           = "user_id"
	FieldCheckinDate      = "checkin_date"
	FieldCheckoutDate     = "checkout_date"
	FieldNumberOfPeople   = "number_of_people"
	FieldAmount           = "amount"
	FieldPaymentSessionID = "payment_session_id"
)

// Reservation is a confirmed stay. Rows are written only after the payment
// provider reports the checkout session as completed.
type Reservation struct {
	ID               string    `db:"id"`
	HouseID          string    `db:"house_id"`
	UserID           string    `db:"user_id"`
	CheckinDate      time.Time `db:"checkin_date"`
	CheckoutDate     time.Time `db:"checkout_date"`
	NumberOfPeople   int       `db:"number_of_people"`
	Amount           int       `db:"amount"`
	PaymentSessionID string    `db:"payment_session_id"`
	HouseName        string    `db:"house_name" table:"houses" column:"name"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN " + houseModel.TableName + " ON " + houseModel.TableName + ".id = " + TableName + ".house_id"
}
