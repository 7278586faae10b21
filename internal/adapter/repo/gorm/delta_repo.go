package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"homestead/internal/adapter/repo/gorm/model"
	"homestead/internal/app/ports"
)

type DeltaRepo struct {
	db *gorm.DB
}

func NewDeltaRepo(db *gorm.DB) DeltaRepo {
	return DeltaRepo{db: db}
}

func (r DeltaRepo) Append(ctx context.Context, deltas []ports.StateDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	rows := make([]model.StateDelta, 0, len(deltas))
	for _, d := range deltas {
		rows = append(rows, model.StateDelta{
			Turn:  d.Turn,
			Scope: d.Scope,
			Owner: d.Owner,
			Key:   d.Key,
			Op:    d.Op,
			Value: d.Value,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}
