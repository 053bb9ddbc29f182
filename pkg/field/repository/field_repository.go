package repository

import (
	"context"

	"genreport/entities"
)

type FieldRepository interface {
	// List returns registry rows, all types when fieldType is empty.
	List(ctx context.Context, fieldType entities.ProdType) ([]entities.Field, error)
	FindByID(ctx context.Context, id string, fieldType entities.ProdType) (*entities.Field, error)
}
