package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"minka/infras/otel"
	"minka/infras/postgres"
	"minka/internal/domains/review/model"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	gRepo "minka/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	// InsertUnique inserts the review only when the (house, user) pair has no
	// review yet. The check and insert run in one transaction, and a concurrent
	// insert that slips past the check is caught by the unique index. Returns
	// created=false when a review already exists.
	InsertUnique(ctx context.Context, model model.Review) (created bool, err error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SortByCreatedAt is the qualified column for ordering reviews newest first.
const SortByCreatedAt = model.TableName + "." + constant.FieldCreatedAt

// FilterByHouse builds the filter selecting all reviews of a house.
func FilterByHouse(houseID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldHouseID,
				Operator: gDto.FilterOperatorEq,
				Value:    houseID,
				Table:    model.TableName,
			},
		},
	}
}

// FilterByHouseAndUser builds the filter identifying a user's review of a house.
func FilterByHouseAndUser(houseID, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldHouseID,
				Operator: gDto.FilterOperatorEq,
				Value:    houseID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}
}

func (repo *repositoryImpl) InsertUnique(ctx context.Context, mod model.Review) (created bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.InsertUnique")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = postgres.WithTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		exists, err := repo.ExistTx(ctx, tx, FilterByHouseAndUser(mod.HouseID, mod.UserID))
		if err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}

		if exists {
			return nil
		}

		if err := repo.InsertTx(ctx, tx, mod); err != nil {
			return err
		}

		created = true

		return nil
	})

	if isUniqueViolation(err) {
		log.Warn().
			Str("houseID", mod.HouseID).
			Str("userID", mod.UserID).
			Msg("concurrent duplicate review caught by unique index")

		return false, nil
	}

	if err != nil {
		return false, err
	}

	return created, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}
