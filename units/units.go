// Package units provides the fixed unit table used when normalizing
// digitized axes to SI, plus a tolerant parser for value+unit strings
// as they appear in figure labels ("0 mV", "1e-3 A/m²", "50 mV/s").
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedUnit indicates a unit symbol that is not in the
// conversion table.
var ErrUnsupportedUnit = errors.New("units: unsupported unit")

// Kind classifies what physical quantity a unit measures.
type Kind int

const (
	// KindUnknown is a unit of no recognized quantity.
	KindUnknown Kind = iota
	// KindPotential is an electric potential (SI: V).
	KindPotential
	// KindCurrent is an electric current (SI: A).
	KindCurrent
	// KindCurrentDensity is a current density (SI: A/m²).
	KindCurrentDensity
	// KindRate is a potential sweep rate (SI: V/s).
	KindRate
	// KindTime is a duration (SI: s).
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindPotential:
		return "potential"
	case KindCurrent:
		return "current"
	case KindCurrentDensity:
		return "current density"
	case KindRate:
		return "rate"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Unit is an entry of the conversion table. Factor converts a value in
// this unit to the SI unit of its kind.
type Unit struct {
	Symbol string
	Kind   Kind
	Factor float64
}

// ToSI converts a value expressed in u to the SI unit of u's kind.
func (u Unit) ToSI(v float64) float64 {
	return v * u.Factor
}

// IsSI reports whether the unit is its kind's SI unit, making ToSI an
// exact identity.
func (u Unit) IsSI() bool {
	return u.Factor == 1
}

// table is the fixed conversion table. Symbols are stored in canonical
// form: NFKC-normalized, μ for micro, no ^ and no ² (see canonical).
var table = map[string]Unit{
	// potential → V
	"V":  {Symbol: "V", Kind: KindPotential, Factor: 1},
	"mV": {Symbol: "mV", Kind: KindPotential, Factor: 1e-3},
	"μV": {Symbol: "μV", Kind: KindPotential, Factor: 1e-6},
	"kV": {Symbol: "kV", Kind: KindPotential, Factor: 1e3},

	// current → A
	"A":  {Symbol: "A", Kind: KindCurrent, Factor: 1},
	"mA": {Symbol: "mA", Kind: KindCurrent, Factor: 1e-3},
	"μA": {Symbol: "μA", Kind: KindCurrent, Factor: 1e-6},
	"nA": {Symbol: "nA", Kind: KindCurrent, Factor: 1e-9},

	// current density → A/m²
	"A/m2":   {Symbol: "A/m2", Kind: KindCurrentDensity, Factor: 1},
	"mA/m2":  {Symbol: "mA/m2", Kind: KindCurrentDensity, Factor: 1e-3},
	"A/cm2":  {Symbol: "A/cm2", Kind: KindCurrentDensity, Factor: 1e4},
	"mA/cm2": {Symbol: "mA/cm2", Kind: KindCurrentDensity, Factor: 10},
	"μA/cm2": {Symbol: "μA/cm2", Kind: KindCurrentDensity, Factor: 1e-2},
	"A/dm2":  {Symbol: "A/dm2", Kind: KindCurrentDensity, Factor: 1e2},

	// sweep rate → V/s
	"V/s":    {Symbol: "V/s", Kind: KindRate, Factor: 1},
	"mV/s":   {Symbol: "mV/s", Kind: KindRate, Factor: 1e-3},
	"μV/s":   {Symbol: "μV/s", Kind: KindRate, Factor: 1e-6},
	"V/min":  {Symbol: "V/min", Kind: KindRate, Factor: 1.0 / 60},
	"mV/min": {Symbol: "mV/min", Kind: KindRate, Factor: 1e-3 / 60},

	// time → s
	"s":   {Symbol: "s", Kind: KindTime, Factor: 1},
	"ms":  {Symbol: "ms", Kind: KindTime, Factor: 1e-3},
	"min": {Symbol: "min", Kind: KindTime, Factor: 60},
	"h":   {Symbol: "h", Kind: KindTime, Factor: 3600},
}

// SI returns the SI unit for a kind.
func SI(kind Kind) Unit {
	switch kind {
	case KindPotential:
		return table["V"]
	case KindCurrent:
		return table["A"]
	case KindCurrentDensity:
		return table["A/m2"]
	case KindRate:
		return table["V/s"]
	case KindTime:
		return table["s"]
	default:
		return Unit{}
	}
}

// Lookup resolves a unit symbol against the conversion table. Spelling
// variants are tolerated: µ (micro sign) and u for μ, ² and ^2 for 2.
func Lookup(symbol string) (Unit, error) {
	c := canonical(symbol)
	if u, ok := table[c]; ok {
		return u, nil
	}

	// ASCII fallback for micro.
	if strings.HasPrefix(c, "u") {
		if u, ok := table["μ"+c[1:]]; ok {
			return u, nil
		}
	}

	return Unit{}, fmt.Errorf("%w: %q", ErrUnsupportedUnit, symbol)
}

// canonical maps a raw unit spelling to table form. NFKC folds the
// micro sign to Greek mu and superscript digits to plain digits; the
// caret spelling m^2 collapses to m2.
func canonical(symbol string) string {
	s := norm.NFKC.String(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "^", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// valueRe captures a leading numeric token (sign, decimals, exponent)
// and the trailing unit text.
var valueRe = regexp.MustCompile(`^\s*([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*(.*?)\s*$`)

// Parse splits a value+unit string into the numeric value and the raw
// unit text. The unit text may be empty; it is not validated against
// the conversion table (use Lookup for that).
func Parse(s string) (float64, string, error) {
	m := valueRe.FindStringSubmatch(s)
	if m == nil {
		return 0, "", fmt.Errorf("no numeric value in %q", s)
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid numeric value %q: %w", m[1], err)
	}
	return v, m[2], nil
}

// ParseQuantity parses a value+unit string and resolves the unit. The
// unit part is required.
func ParseQuantity(s string) (float64, Unit, error) {
	v, sym, err := Parse(s)
	if err != nil {
		return 0, Unit{}, err
	}
	if sym == "" {
		return 0, Unit{}, fmt.Errorf("%w: missing unit in %q", ErrUnsupportedUnit, s)
	}
	u, err := Lookup(sym)
	if err != nil {
		return 0, Unit{}, err
	}
	return v, u, nil
}
