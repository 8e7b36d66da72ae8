package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"minka/infras/otel"
	"minka/infras/postgres"
	"minka/internal/domains/reservation/model"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	gRepo "minka/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// SortByCreatedAt is the qualified column for ordering reservations newest first.
const SortByCreatedAt = model.TableName + "." + constant.FieldCreatedAt

// FilterByUser builds the filter selecting all reservations of a user.
func FilterByUser(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}
}

// FilterBySession builds the filter locating the reservation persisted for a
// checkout session. Used to keep webhook redeliveries idempotent.
func FilterBySession(sessionID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPaymentSessionID,
				Operator: gDto.FilterOperatorEq,
				Value:    sessionID,
				Table:    model.TableName,
			},
		},
	}
}
