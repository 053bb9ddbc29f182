package service

import (
	"context"

	"genreport/entities"
)

type FieldService interface {
	List(ctx context.Context, fieldType entities.ProdType) ([]entities.Field, error)
	GetFieldByID(ctx context.Context, id string, fieldType entities.ProdType) (*entities.Field, error)
	// KnownIDs is the set of registered ids of one type.
	KnownIDs(ctx context.Context, fieldType entities.ProdType) (map[string]bool, error)
}
