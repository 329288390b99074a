package database

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/pkg/lib/database/formula"
)

// RollupResult is the outcome of aggregating a property across related
// pages. Aggregate holds the numeric result (none when undefined, e.g. the
// average of no numeric entries); Original holds the raw collected values
// for show_original.
type RollupResult struct {
	Function  domain.RollupFunction
	Aggregate domain.Value
	Original  []domain.Value
}

// CalculateRollup collects rollupProperty from every related page whose id
// appears in relationIDs and aggregates with fn. Relation ids without a
// fetched page are skipped; non-numeric entries are skipped by the numeric
// aggregations rather than poisoning them, and avg divides by the count of
// numeric entries only.
func CalculateRollup(relationIDs []string, relatedPages []domain.Page, rollupProperty string, fn domain.RollupFunction) RollupResult {
	byID := make(map[string]domain.Page, len(relatedPages))
	for _, p := range relatedPages {
		byID[p.ID] = p
	}

	matched := 0
	var collected []domain.Value
	for _, id := range relationIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		matched++
		if v := p.Value(rollupProperty); v.Ok() {
			collected = append(collected, v)
		}
	}

	res := RollupResult{Function: fn}
	switch fn {
	case domain.RollupCount:
		res.Aggregate = domain.Int64(int64(matched))
	case domain.RollupSum, domain.RollupAvg:
		sum := decimal.Zero
		valid := 0
		for _, v := range collected {
			f, ok := v.CoerceFloat()
			if !ok {
				continue
			}
			sum = sum.Add(decimal.NewFromFloat(f))
			valid++
		}
		if fn == domain.RollupSum {
			f, _ := sum.Float64()
			res.Aggregate = domain.Float64(f)
		} else if valid > 0 {
			f, _ := sum.Div(decimal.NewFromInt(int64(valid))).Float64()
			res.Aggregate = domain.Float64(f)
		}
	case domain.RollupMin, domain.RollupMax:
		var best float64
		found := false
		for _, v := range collected {
			f, ok := v.CoerceFloat()
			if !ok {
				continue
			}
			if !found {
				best = f
				found = true
				continue
			}
			if fn == domain.RollupMin && f < best {
				best = f
			}
			if fn == domain.RollupMax && f > best {
				best = f
			}
		}
		if found {
			res.Aggregate = domain.Float64(best)
		}
	case domain.RollupShowOriginal:
		res.Original = collected
	default:
		log.Warnf("unknown rollup function %q", fn)
	}
	return res
}

// FormatRollupResult renders a rollup for display: an undefined aggregate is
// an empty string, show_original joins the collected values.
func FormatRollupResult(r RollupResult) string {
	if r.Function == domain.RollupShowOriginal {
		parts := make([]string, 0, len(r.Original))
		for _, v := range r.Original {
			parts = append(parts, formula.FormatResult(v))
		}
		return strings.Join(parts, ", ")
	}
	return formula.FormatResult(r.Aggregate)
}
