package service

import (
	"sort"

	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// unclassifiedSector groups companies whose dimension row carries no sector.
const unclassifiedSector = "Unclassified"

// rankSnapshots keeps snapshots whose key is non-null, orders them by key
// (descending when desc) and returns at most limit rows. The input must be in
// insertion order: the stable sort keeps that order among equal keys.
func rankSnapshots(snaps []models.Snapshot, key func(models.Snapshot) decimal.NullDecimal, desc bool, limit int) []models.Snapshot {
	ranked := make([]models.Snapshot, 0, len(snaps))
	for _, s := range snaps {
		if key(s).Valid {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		c := key(ranked[i]).Decimal.Cmp(key(ranked[j]).Decimal)
		if desc {
			return c > 0
		}
		return c < 0
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func dailyReturn(s models.Snapshot) decimal.NullDecimal   { return s.DailyReturn }
func volatility30d(s models.Snapshot) decimal.NullDecimal { return s.Volatility30d }

type sectorAverage struct {
	sector    string
	avg       decimal.NullDecimal
	companies int
}

// averageBySector computes the mean daily return of every sector. Companies
// without a return count toward the sector but not toward its mean. Sectors are
// ordered by mean descending (null means last), then by name.
func averageBySector(snaps []models.Snapshot) []sectorAverage {
	type acc struct {
		sum       decimal.Decimal
		n         int64
		companies int
	}
	groups := make(map[string]*acc)
	for _, s := range snaps {
		name := unclassifiedSector
		if s.Sector.Valid && s.Sector.String != "" {
			name = s.Sector.String
		}
		a, ok := groups[name]
		if !ok {
			a = &acc{sum: decimal.Zero}
			groups[name] = a
		}
		a.companies++
		if s.DailyReturn.Valid {
			a.sum = a.sum.Add(s.DailyReturn.Decimal)
			a.n++
		}
	}

	out := make([]sectorAverage, 0, len(groups))
	for name, a := range groups {
		sa := sectorAverage{sector: name, companies: a.companies}
		if a.n > 0 {
			sa.avg = decimal.NewNullDecimal(a.sum.DivRound(decimal.NewFromInt(a.n), 8))
		}
		out = append(out, sa)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].avg, out[j].avg
		switch {
		case ai.Valid && !aj.Valid:
			return true
		case !ai.Valid && aj.Valid:
			return false
		case ai.Valid && aj.Valid:
			if c := ai.Decimal.Cmp(aj.Decimal); c != 0 {
				return c > 0
			}
		}
		return out[i].sector < out[j].sector
	})
	return out
}
