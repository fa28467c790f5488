package models

import (
	"time"
)

// FreePackNever is the last_free_pack_at sentinel for accounts that have
// never claimed a free pack
var FreePackNever = time.Unix(0, 0).UTC()

// Account represents a player with a coin balance and a free-pack cooldown
type Account struct {
	UserID         int64     `db:"user_id"`
	Coins          int64     `db:"coins"`
	LastFreePackAt time.Time `db:"last_free_pack_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// FreePackAvailableAt returns when the account may next claim a free pack
func (a *Account) FreePackAvailableAt(cooldown time.Duration) time.Time {
	return a.LastFreePackAt.Add(cooldown)
}
