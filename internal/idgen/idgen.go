// Package idgen produces the human-readable prefixed ids used across
// the back office (BKG-a1b2c3d4 and friends).
package idgen

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entity binds an id prefix to the table the collision check runs
// against.
type Entity struct {
	Prefix string
	Table  string
}

var (
	EntityTraveler    = Entity{Prefix: "TRV", Table: "travelers"}
	EntityAgent       = Entity{Prefix: "AGT", Table: "agents"}
	EntityBooking     = Entity{Prefix: "BKG", Table: "bookings"}
	EntityEmi         = Entity{Prefix: "EMI", Table: "emis"}
	EntityTransaction = Entity{Prefix: "TRN", Table: "transactions"}
	EntityUser        = Entity{Prefix: "USR", Table: "users"}
)

// Generator draws a short digit suffix from a random UUID and retries
// until the id is free. Uniqueness is only as strong as the check at
// generation time; a race between check and insert is possible and
// accepted.
type Generator struct {
	Exists func(table, id string) (bool, error)
}

// NewGenerator checks collisions against the live tables.
func NewGenerator(db *sql.DB) Generator {
	return Generator{
		Exists: func(table, id string) (bool, error) {
			var n int
			query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table)
			if err := db.QueryRow(query, id).Scan(&n); err != nil {
				return false, err
			}
			return n > 0, nil
		},
	}
}

// Next returns a fresh id for the entity, e.g. "TRV-81352904".
func (g Generator) Next(e Entity) (string, error) {
	for {
		suffix := shortSuffix()
		if suffix == "" {
			continue
		}
		id := e.Prefix + "-" + suffix
		taken, err := g.Exists(e.Table, id)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}
		return id, nil
	}
}

// shortSuffix strips the non-digits from a random UUID and keeps the
// first eight. A UUID with fewer than eight digits is discarded.
func shortSuffix() string {
	raw := uuid.NewString()
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == 8 {
				return b.String()
			}
		}
	}
	return ""
}
