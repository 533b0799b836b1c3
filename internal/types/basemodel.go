package types

import "time"

// BaseModel carries the bookkeeping columns common to every persisted
// entity. Changes to this struct must be reflected in the SQL migrations
// under cmd/migrate.
type BaseModel struct {
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func NewBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{Status: StatusActive, CreatedAt: now, UpdatedAt: now}
}
