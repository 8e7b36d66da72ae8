package model

import (
	userModel "minka/internal/domains/user/model"
	"minka/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID      = "id"
	FieldHouseID = "house_id"
	FieldUserID  = "user_id"
	FieldRating  = "rating"
	FieldComment = "comment"
)

type Review struct {
	ID           string `db:"id"`
	HouseID      string `db:"house_id"`
	UserID       string `db:"user_id"`
	Rating       int    `db:"rating"`
	Comment      string `db:"comment"`
	ReviewerName string `db:"reviewer_name" table:"users" column:"full_name"`
	model.Metadata
}

func (Review) GetJoinQuery() string {
	return "JOIN " + userModel.TableName + " ON " + userModel.TableName + ".id = " + TableName + ".user_id"
}
