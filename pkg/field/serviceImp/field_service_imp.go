package serviceImp

import (
	"context"
	"fmt"

	"genreport/entities"
	repo "genreport/pkg/field/repository"
	"genreport/pkg/field/service"
)

type fieldSvc struct{ r repo.FieldRepository }

func NewFieldService(r repo.FieldRepository) service.FieldService { return &fieldSvc{r} }

func (s *fieldSvc) List(ctx context.Context, fieldType entities.ProdType) ([]entities.Field, error) {
	if fieldType != "" && !fieldType.Valid() {
		return nil, fmt.Errorf("unknown field type %q", fieldType)
	}
	return s.r.List(ctx, fieldType)
}

func (s *fieldSvc) GetFieldByID(ctx context.Context, id string, fieldType entities.ProdType) (*entities.Field, error) {
	return s.r.FindByID(ctx, id, fieldType)
}

func (s *fieldSvc) KnownIDs(ctx context.Context, fieldType entities.ProdType) (map[string]bool, error) {
	fields, err := s.List(ctx, fieldType)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f.FieldID] = true
	}
	return out, nil
}
