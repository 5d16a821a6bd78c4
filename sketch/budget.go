package sketch

import "math"

// MaxPartsCeiling bounds planning cost and viewer load; the budget curve
// plateaus here no matter the reality factor.
const MaxPartsCeiling = 64

// Allocate resolves a reality factor (0..100) and an optional hard override
// into a part budget. A positive override always wins. The derived curve is
// the direct mapping max(1, min(round(rf), ceiling)): f(0)=1, monotone
// non-decreasing, plateau at MaxPartsCeiling.
func Allocate(realityFactor float64, override int) (Budget, error) {
	if override < 0 {
		return Budget{}, configErrorf("max parts override must be positive, got %d", override)
	}
	if !isFinite(realityFactor) || realityFactor < 0 || realityFactor > 100 {
		return Budget{}, configErrorf("reality factor out of range [0,100]: %v", realityFactor)
	}

	b := Budget{
		RealityFactor: realityFactor,
		Truncation:    TruncationNone,
	}

	if override > 0 {
		b.MaxParts = override
		b.Source = BudgetOverride
		return b, nil
	}

	maxParts := int(math.Round(realityFactor))
	if maxParts < 1 {
		maxParts = 1
	}
	if maxParts > MaxPartsCeiling {
		maxParts = MaxPartsCeiling
	}
	b.MaxParts = maxParts
	b.Source = BudgetDerived
	return b, nil
}
