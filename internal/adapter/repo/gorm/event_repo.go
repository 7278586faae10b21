package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"homestead/internal/adapter/repo/gorm/model"
	"homestead/internal/domain/sim"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.SimEvent, 0, len(events))
	for _, e := range events {
		args, _ := json.Marshal(e.Args)
		rows = append(rows, model.SimEvent{
			EventID: e.ID,
			Turn:    e.Turn,
			Actor:   e.Actor,
			Type:    e.Type,
			OK:      e.OK,
			Message: e.Message,
			Args:    args,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByTurnRange(ctx context.Context, fromTurn, toTurn, limit int) ([]sim.Event, error) {
	query := getDBFromCtx(ctx, r.db).
		Model(&model.SimEvent{}).
		Where("turn >= ?", fromTurn).
		Order("id ASC")
	if toTurn > 0 {
		query = query.Where("turn <= ?", toTurn)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.SimEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]sim.Event, 0, len(rows))
	for _, row := range rows {
		var args map[string]any
		if len(row.Args) > 0 {
			_ = json.Unmarshal(row.Args, &args)
		}
		out = append(out, sim.Event{
			ID:      row.EventID,
			Turn:    row.Turn,
			Actor:   row.Actor,
			Type:    row.Type,
			Args:    args,
			OK:      row.OK,
			Message: row.Message,
		})
	}
	return out, nil
}
