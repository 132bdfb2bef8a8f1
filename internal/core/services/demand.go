package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

var (
	lakh  = decimal.NewFromInt(100_000)
	crore = decimal.NewFromInt(10_000_000)

	demandPattern = regexp.MustCompile(`^(?:rs\.?|inr|₹)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*([a-z]*)\.?$`)
)

// ParseDemand parses a free-text demand such as "50 Lakh", "1.2 crore",
// "35L", "2 cr" or "4,500,000" into rupees.
func ParseDemand(s string) (decimal.Decimal, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	m := demandPattern.FindStringSubmatch(raw)
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: unrecognised demand %q", domain.ErrInvalidInput, s)
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: unrecognised demand %q", domain.ErrInvalidInput, s)
	}

	switch m[2] {
	case "":
		return amount, nil
	case "l", "lac", "lacs", "lakh", "lakhs":
		return amount.Mul(lakh), nil
	case "cr", "crs", "crore", "crores":
		return amount.Mul(crore), nil
	case "k":
		return amount.Mul(decimal.NewFromInt(1000)), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown demand unit %q", domain.ErrInvalidInput, m[2])
	}
}

// demandRange is a parsed inclusive demand bound pair. Unset bounds are nil.
type demandRange struct {
	min, max *decimal.Decimal
}

func parseDemandRange(minDemand, maxDemand string) (demandRange, error) {
	var r demandRange
	if minDemand != "" {
		v, err := ParseDemand(minDemand)
		if err != nil {
			return r, fmt.Errorf("min demand: %w", err)
		}
		r.min = &v
	}
	if maxDemand != "" {
		v, err := ParseDemand(maxDemand)
		if err != nil {
			return r, fmt.Errorf("max demand: %w", err)
		}
		r.max = &v
	}
	return r, nil
}

func (r demandRange) isSet() bool {
	return r.min != nil || r.max != nil
}

// contains reports whether demand falls within the range. Unparseable
// demands never match a set range.
func (r demandRange) contains(demand string) bool {
	if !r.isSet() {
		return true
	}
	v, err := ParseDemand(demand)
	if err != nil {
		return false
	}
	if r.min != nil && v.LessThan(*r.min) {
		return false
	}
	if r.max != nil && v.GreaterThan(*r.max) {
		return false
	}
	return true
}
