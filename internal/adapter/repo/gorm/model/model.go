// Package model holds the gorm table definitions for the postgres-backed
// repositories.
package model

import "time"

// SimEvent is one row of the append-only event log.
type SimEvent struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"uniqueIndex;size:64"`
	Turn      int    `gorm:"index"`
	Actor     string `gorm:"size:64;index"`
	Type      string `gorm:"size:64"`
	OK        bool
	Message   string
	Args      []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SimEvent) TableName() string { return "sim_events" }

// StateDelta is one key-level change derived from a tool invocation.
type StateDelta struct {
	ID        uint   `gorm:"primaryKey"`
	Turn      int    `gorm:"index"`
	Scope     string `gorm:"size:32;index"`
	Owner     string `gorm:"size:64"`
	Key       string `gorm:"size:64;column:delta_key"`
	Op        string `gorm:"size:16"`
	Value     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (StateDelta) TableName() string { return "state_deltas" }

// WorldSnapshot stores the full serialized state after an invocation.
type WorldSnapshot struct {
	ID        uint `gorm:"primaryKey"`
	Turn      int  `gorm:"index"`
	TurnIndex int
	State     []byte    `gorm:"type:jsonb"`
	TakenAt   time.Time `gorm:"index"`
}

func (WorldSnapshot) TableName() string { return "world_snapshots" }
