package pgstore

import (
	"time"

	"github.com/uptrace/bun"
)

// Entry is a row of the kv_entries table.
type Entry struct {
	bun.BaseModel `bun:"table:kv_entries,alias:kv"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
