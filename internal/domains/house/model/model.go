package model

import "minka/shared/model"

const (
	TableName  = "houses"
	EntityName = "house"

	FieldID          = "id"
	FieldName        = "name"
	FieldImageURL    = "image_url"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldPostalCode  = "postal_code"
	FieldAddress     = "address"
	FieldPhoneNumber = "phone_number"
)

type House struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	ImageURL    *string `db:"image_url"`
	Description string  `db:"description"`
	Price       int     `db:"price"`
	Capacity    int     `db:"capacity"`
	PostalCode  string  `db:"postal_code"`
	Address     string  `db:"address"`
	PhoneNumber string  `db:"phone_number"`
	model.Metadata
}
