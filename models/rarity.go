package models

import (
	"fmt"
)

// Rarity is a card rarity tier
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityInfo holds the draw weight and the income assigned to cards
// synthesized for a rarity when the catalog has no definition of it yet
type RarityInfo struct {
	Weight        int64
	DefaultIncome int64
}

// RarityTable maps each rarity to its draw weight and default income.
// Weights are relative; they do not need to sum to 100.
type RarityTable struct {
	order []Rarity
	info  map[Rarity]RarityInfo
	total int64
}

// DefaultRarityTable returns the standard rarity configuration
func DefaultRarityTable() RarityTable {
	table, err := NewRarityTable([]Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}, map[Rarity]RarityInfo{
		RarityCommon:    {Weight: 60, DefaultIncome: 1},
		RarityRare:      {Weight: 25, DefaultIncome: 3},
		RarityEpic:      {Weight: 10, DefaultIncome: 8},
		RarityLegendary: {Weight: 5, DefaultIncome: 20},
	})
	if err != nil {
		panic(fmt.Sprintf("default rarity table is invalid: %v", err))
	}
	return table
}

// NewRarityTable builds a validated rarity table from an ordered set of
// rarities and their configuration
func NewRarityTable(order []Rarity, info map[Rarity]RarityInfo) (RarityTable, error) {
	if len(order) == 0 {
		return RarityTable{}, fmt.Errorf("rarity table must contain at least one rarity")
	}
	if len(order) != len(info) {
		return RarityTable{}, fmt.Errorf("rarity order and info must cover the same rarities")
	}

	var total int64
	for _, r := range order {
		ri, ok := info[r]
		if !ok {
			return RarityTable{}, fmt.Errorf("rarity %q has no configuration", r)
		}
		if ri.Weight <= 0 {
			return RarityTable{}, fmt.Errorf("rarity %q must have a positive weight, got %d", r, ri.Weight)
		}
		if ri.DefaultIncome < 0 {
			return RarityTable{}, fmt.Errorf("rarity %q must have a non-negative default income, got %d", r, ri.DefaultIncome)
		}
		total += ri.Weight
	}

	copied := make(map[Rarity]RarityInfo, len(info))
	for r, ri := range info {
		copied[r] = ri
	}

	return RarityTable{
		order: append([]Rarity(nil), order...),
		info:  copied,
		total: total,
	}, nil
}

// Rarities returns the configured rarities in order
func (t RarityTable) Rarities() []Rarity {
	return append([]Rarity(nil), t.order...)
}

// TotalWeight returns the sum of all rarity weights
func (t RarityTable) TotalWeight() int64 {
	return t.total
}

// Contains reports whether the rarity is part of the table
func (t RarityTable) Contains(r Rarity) bool {
	_, ok := t.info[r]
	return ok
}

// DefaultIncome returns the default income-per-hour for a rarity
func (t RarityTable) DefaultIncome(r Rarity) int64 {
	return t.info[r].DefaultIncome
}

// Pick maps a roll in [0, TotalWeight()) onto a rarity according to the
// configured weights. Each pack slot is an independent draw, so the same
// rarity may repeat within a pack.
func (t RarityTable) Pick(roll int64) Rarity {
	if roll < 0 || roll >= t.total {
		// Out-of-range rolls collapse to the most common tier rather
		// than panic; callers draw rolls from TotalWeight anyway.
		return t.order[0]
	}
	for _, r := range t.order {
		roll -= t.info[r].Weight
		if roll < 0 {
			return r
		}
	}
	return t.order[len(t.order)-1]
}
