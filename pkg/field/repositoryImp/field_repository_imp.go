package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"genreport/entities"
	"genreport/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) List(ctx context.Context, fieldType entities.ProdType) ([]entities.Field, error) {
	q := r.db.WithContext(ctx).Model(&entities.Field{})
	if fieldType != "" {
		q = q.Where("field_type = ?", fieldType)
	}
	var out []entities.Field
	if err := q.Order("field_id ASC, field_type ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fieldRepo) FindByID(ctx context.Context, id string, fieldType entities.ProdType) (*entities.Field, error) {
	var f entities.Field
	if err := r.db.WithContext(ctx).Where("field_id = ? AND field_type = ?", id, fieldType).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}
