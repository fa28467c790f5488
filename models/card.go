package models

import (
	"time"
)

// Card represents a card definition in the catalog
type Card struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Rarity       Rarity    `db:"rarity"`
	CoinsPerHour int64     `db:"coins_per_hour"`
	ArtworkRef   *string   `db:"artwork_ref"`
	CreatedAt    time.Time `db:"created_at"`
}
