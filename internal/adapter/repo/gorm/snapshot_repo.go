package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homestead/internal/adapter/repo/gorm/model"
	"homestead/internal/app/ports"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Save(ctx context.Context, snap ports.SnapshotRecord) error {
	row := model.WorldSnapshot{
		Turn:      snap.Turn,
		TurnIndex: snap.TurnIndex,
		State:     snap.State,
		TakenAt:   snap.TakenAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}

func (r SnapshotRepo) Latest(ctx context.Context) (ports.SnapshotRecord, error) {
	var row model.WorldSnapshot
	err := getDBFromCtx(ctx, r.db).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SnapshotRecord{}, err
	}
	return ports.SnapshotRecord{
		Turn:      row.Turn,
		TurnIndex: row.TurnIndex,
		State:     row.State,
		TakenAt:   row.TakenAt,
	}, nil
}
