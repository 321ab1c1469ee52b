package types

import (
	"cosmossdk.io/math"

	"github.com/proof-of-capital/poc-chain/pkg/bips"
)

// Module name and store key
const (
	ModuleName = "curve"
	StoreKey   = ModuleName
)

// CurveParams fixes the shape of the stepped schedule at initialization.
type CurveParams struct {
	RewardDenom   string         `json:"reward_denom"`
	InitialPrice  math.LegacyDec `json:"initial_price"`
	InitialVolume math.Int       `json:"initial_volume"`

	// PriceStepBips grows the level price each advance; must be
	// non-negative so the unit price is non-decreasing in TotalSold.
	PriceStepBips int64 `json:"price_step_bips"`

	// VolumeStepBips scales the level volume each advance; may be negative
	// (shrinking levels). ProportionalityCoefBips dampens the volume step
	// itself on every advance, bending the supply curve away from a pure
	// geometric series.
	VolumeStepBips          int64 `json:"volume_step_bips"`
	ProportionalityCoefBips int64 `json:"proportionality_coef_bips"`

	// TotalSupply is the hard cap on reward asset ever sellable.
	TotalSupply math.Int `json:"total_supply"`

	// MaxOracleDeviationBips bounds how far an executed output may drift
	// from the oracle-implied expected output.
	MaxOracleDeviationBips int64 `json:"max_oracle_deviation_bips"`
}

// Validate checks parameter sanity.
func (p CurveParams) Validate() error {
	if p.RewardDenom == "" {
		return ErrInvalidParams
	}
	if p.InitialPrice.IsNil() || !p.InitialPrice.IsPositive() {
		return ErrInvalidParams
	}
	if p.InitialVolume.IsNil() || !p.InitialVolume.IsPositive() {
		return ErrInvalidParams
	}
	if p.PriceStepBips < 0 {
		return ErrInvalidParams
	}
	if p.VolumeStepBips <= -bips.BasisPoints {
		return ErrInvalidParams
	}
	if p.ProportionalityCoefBips < 0 {
		return ErrInvalidParams
	}
	if p.TotalSupply.IsNil() || !p.TotalSupply.IsPositive() {
		return ErrInvalidParams
	}
	if !bips.Valid(p.MaxOracleDeviationBips) {
		return ErrInvalidParams
	}
	return nil
}

// Orderbook is the singleton bonding-curve state. The CurrentLevel* fields
// cache the active level so a sale never re-derives the stepped series from
// level zero; the cache is advanced exactly when a level is exhausted.
type Orderbook struct {
	Params CurveParams `json:"params"`

	TotalSold math.Int `json:"total_sold"`

	CurrentLevel          uint64         `json:"current_level"`
	CurrentLevelPrice     math.LegacyDec `json:"current_level_price"`
	CurrentLevelVolume    math.Int       `json:"current_level_volume"`
	CurrentLevelSold      math.Int       `json:"current_level_sold"`
	CurrentVolumeStepBips int64          `json:"current_volume_step_bips"`

	UpdatedAt int64 `json:"updated_at"`
}

// NewOrderbook seeds the curve at level zero.
func NewOrderbook(params CurveParams, now int64) *Orderbook {
	return &Orderbook{
		Params:                params,
		TotalSold:             math.ZeroInt(),
		CurrentLevel:          0,
		CurrentLevelPrice:     params.InitialPrice,
		CurrentLevelVolume:    params.InitialVolume,
		CurrentLevelSold:      math.ZeroInt(),
		CurrentVolumeStepBips: params.VolumeStepBips,
		UpdatedAt:             now,
	}
}

// LevelRemaining returns the units still sellable at the cached level.
func (ob *Orderbook) LevelRemaining() math.Int {
	return ob.CurrentLevelVolume.Sub(ob.CurrentLevelSold)
}

// SupplyRemaining returns the units still sellable under the hard cap.
func (ob *Orderbook) SupplyRemaining() math.Int {
	return ob.Params.TotalSupply.Sub(ob.TotalSold)
}

// AdvanceLevel moves the cache to the next level:
//
//	price'   = price   × (BasisPoints + PriceStepBips) / BasisPoints
//	volStep' = volStep × ProportionalityCoefBips       / BasisPoints
//	volume'  = volume  × (BasisPoints + volStep')      / BasisPoints
//
// The dampened volume step is what bends the series away from plain
// geometric decay. Volume is floored at one unit so the walk always
// terminates.
func (ob *Orderbook) AdvanceLevel() {
	ob.CurrentLevel++
	ob.CurrentLevelPrice = bips.ApplyDecStep(ob.CurrentLevelPrice, ob.Params.PriceStepBips)
	ob.CurrentVolumeStepBips = ob.CurrentVolumeStepBips * ob.Params.ProportionalityCoefBips / bips.BasisPoints
	ob.CurrentLevelVolume = bips.ApplyStep(ob.CurrentLevelVolume, ob.CurrentVolumeStepBips)
	if !ob.CurrentLevelVolume.IsPositive() {
		ob.CurrentLevelVolume = math.OneInt()
	}
	ob.CurrentLevelSold = math.ZeroInt()
}

// SaleFill describes one executed sale across however many levels it spanned.
type SaleFill struct {
	UnitsSold     math.Int       `json:"units_sold"`
	Proceeds      math.Int       `json:"proceeds"`
	LevelsCrossed uint64         `json:"levels_crossed"`
	AvgPrice      math.LegacyDec `json:"avg_price"`
}
