package search

import (
	"strconv"

	"github.com/csgarlock/corvid/internal/params"
)

// Params holds the runtime-tunable search constants spec.md §6 names
// (ParamFile: "aspiration window, history-pruning thresholds, LMR
// adjustments..."). Default returns the constants this package shipped
// with before tuning was wired in; LoadParams overrides any of them
// present in a parsed key=value Set, leaving the rest at their default.
type Params struct {
	AspBase     int32
	AspPerDepth int32

	HistPruneMinDepth     int
	HistPruneLateBase     int
	HistPruneLatePerDepth int
	HistPruneThreshold    int32

	// LMRDivisor is the denominator of the log-log reduction formula
	// (spec.md §4.7 step 15); smaller values reduce more aggressively.
	LMRDivisor float64
}

// Default returns the constants this package was tuned with.
func Default() Params {
	return Params{
		AspBase:               aspBase,
		AspPerDepth:           aspPerDepth,
		HistPruneMinDepth:     histPruneMinDepth,
		HistPruneLateBase:     histPruneLateBase,
		HistPruneLatePerDepth: histPruneLatePerDepth,
		HistPruneThreshold:    histPruneThreshold,
		LMRDivisor:            lmrDivisor,
	}
}

// LoadParams overrides Default()'s fields with any present in set,
// keyed by the field names below (a missing or malformed key leaves the
// default untouched, per spec.md §7's "no fatal error paths").
func LoadParams(set params.Set) Params {
	p := Default()
	if set == nil {
		return p
	}
	p.AspBase = int32(set.Int("AspBase", int(p.AspBase)))
	p.AspPerDepth = int32(set.Int("AspPerDepth", int(p.AspPerDepth)))
	p.HistPruneMinDepth = set.Int("HistPruneMinDepth", p.HistPruneMinDepth)
	p.HistPruneLateBase = set.Int("HistPruneLateBase", p.HistPruneLateBase)
	p.HistPruneLatePerDepth = set.Int("HistPruneLatePerDepth", p.HistPruneLatePerDepth)
	p.HistPruneThreshold = int32(set.Int("HistPruneThreshold", int(p.HistPruneThreshold)))
	if raw, ok := set["LMRDivisor"]; ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			p.LMRDivisor = f
		}
	}
	return p
}
