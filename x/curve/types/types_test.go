package types

import (
	"testing"

	"cosmossdk.io/math"
)

func validParams() CurveParams {
	return CurveParams{
		RewardDenom:             "ureward",
		InitialPrice:            math.LegacyOneDec(),
		InitialVolume:           math.NewInt(100),
		PriceStepBips:           1000,
		VolumeStepBips:          0,
		ProportionalityCoefBips: 10_000,
		TotalSupply:             math.NewInt(1000),
		MaxOracleDeviationBips:  500,
	}
}

// TestCurveParamsValidate tests schedule parameter sanity checks
func TestCurveParamsValidate(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*CurveParams)
	}{
		{name: "missing reward denom", mutate: func(p *CurveParams) { p.RewardDenom = "" }},
		{name: "zero initial price", mutate: func(p *CurveParams) { p.InitialPrice = math.LegacyZeroDec() }},
		{name: "nil initial price", mutate: func(p *CurveParams) { p.InitialPrice = math.LegacyDec{} }},
		{name: "zero initial volume", mutate: func(p *CurveParams) { p.InitialVolume = math.ZeroInt() }},
		{name: "negative price step", mutate: func(p *CurveParams) { p.PriceStepBips = -1 }},
		{name: "volume step at negative whole", mutate: func(p *CurveParams) { p.VolumeStepBips = -10_000 }},
		{name: "negative proportionality", mutate: func(p *CurveParams) { p.ProportionalityCoefBips = -1 }},
		{name: "zero total supply", mutate: func(p *CurveParams) { p.TotalSupply = math.ZeroInt() }},
		{name: "deviation above whole", mutate: func(p *CurveParams) { p.MaxOracleDeviationBips = 10_001 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			if err := params.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestAdvanceLevel tests the stepped price and volume progression
func TestAdvanceLevel(t *testing.T) {
	ob := NewOrderbook(validParams(), 1_700_000_000)
	if ob.CurrentLevel != 0 || !ob.CurrentLevelVolume.Equal(math.NewInt(100)) {
		t.Fatalf("expected fresh book at level 0 volume 100, got level %d volume %s", ob.CurrentLevel, ob.CurrentLevelVolume)
	}

	ob.AdvanceLevel()
	if !ob.CurrentLevelPrice.Equal(math.LegacyMustNewDecFromStr("1.1")) {
		t.Errorf("expected price 1.1, got %s", ob.CurrentLevelPrice)
	}
	// Zero volume step keeps levels the same size
	if !ob.CurrentLevelVolume.Equal(math.NewInt(100)) {
		t.Errorf("expected volume 100, got %s", ob.CurrentLevelVolume)
	}

	ob.AdvanceLevel()
	if ob.CurrentLevel != 2 {
		t.Errorf("expected level 2, got %d", ob.CurrentLevel)
	}
	if !ob.CurrentLevelPrice.Equal(math.LegacyMustNewDecFromStr("1.21")) {
		t.Errorf("expected price 1.21, got %s", ob.CurrentLevelPrice)
	}
	if !ob.CurrentLevelSold.IsZero() {
		t.Errorf("expected level sold reset, got %s", ob.CurrentLevelSold)
	}
}

// TestAdvanceLevelDampedVolume tests the proportionality damping on the
// volume step
func TestAdvanceLevelDampedVolume(t *testing.T) {
	params := validParams()
	params.VolumeStepBips = -2000
	params.ProportionalityCoefBips = 5000
	ob := NewOrderbook(params, 1_700_000_000)

	// step dampens to -1000 before applying: 100 -> 90
	ob.AdvanceLevel()
	if ob.CurrentVolumeStepBips != -1000 {
		t.Errorf("expected damped step -1000, got %d", ob.CurrentVolumeStepBips)
	}
	if !ob.CurrentLevelVolume.Equal(math.NewInt(90)) {
		t.Errorf("expected volume 90, got %s", ob.CurrentLevelVolume)
	}

	// step dampens to -500: 90 * 0.95 truncates to 85
	ob.AdvanceLevel()
	if !ob.CurrentLevelVolume.Equal(math.NewInt(85)) {
		t.Errorf("expected volume 85, got %s", ob.CurrentLevelVolume)
	}
}

// TestAdvanceLevelVolumeFloor tests that a collapsing volume never reaches
// zero
func TestAdvanceLevelVolumeFloor(t *testing.T) {
	params := validParams()
	params.InitialVolume = math.OneInt()
	params.VolumeStepBips = -9999
	ob := NewOrderbook(params, 1_700_000_000)

	ob.AdvanceLevel()
	if !ob.CurrentLevelVolume.Equal(math.OneInt()) {
		t.Errorf("expected volume floored at 1, got %s", ob.CurrentLevelVolume)
	}
}

// TestOrderbookRemaining tests the level and supply accounting helpers
func TestOrderbookRemaining(t *testing.T) {
	ob := NewOrderbook(validParams(), 1_700_000_000)
	ob.CurrentLevelSold = math.NewInt(30)
	ob.TotalSold = math.NewInt(130)

	if !ob.LevelRemaining().Equal(math.NewInt(70)) {
		t.Errorf("expected 70 remaining at level, got %s", ob.LevelRemaining())
	}
	if !ob.SupplyRemaining().Equal(math.NewInt(870)) {
		t.Errorf("expected 870 remaining under cap, got %s", ob.SupplyRemaining())
	}
}
