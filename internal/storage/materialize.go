package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/nsepulse/internal/domain/models"
)

// advisoryNamespace is the first key of pg_advisory_xact_lock(int, int); the second is the trade date.
const advisoryNamespace = 0x6d6174 // "mat"

const (
	priceFactsForDateSQL = `
		SELECT f.company_id, c.symbol, f.trade_date, f.open, f.close, f.high, f.low, f.volume
		FROM price_facts f
		JOIN companies c ON c.id = f.company_id
		WHERE f.trade_date = $1
		ORDER BY c.symbol, f.company_id`

	insertCompanyMetricSQL = `
		INSERT INTO company_metrics (symbol, trade_date, open, close, high, low, volume, returns, volatility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (symbol, trade_date) DO NOTHING`

	insertMarketOverviewSQL = `
		INSERT INTO market_overview (trade_date, total_volume, advancers, decliners, unchanged, market_cap)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trade_date) DO NOTHING`
)

// Materialize opens a transaction, serializes writers of the same trade date with a
// transaction-scoped advisory lock, and runs fn inside it. Any error from fn (or a
// panic) rolls everything back.
//
// READ COMMITTED is required: a writer that waited on the lock must see the rows
// committed by the holder, otherwise ON CONFLICT DO NOTHING fails with 40001.
func (r *Repository) Materialize(ctx context.Context, tradeDate time.Time, fn func(ctx context.Context, tx MaterializationTx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return classify("begin materialization", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, advisoryNamespace, dateKey(tradeDate)); err != nil {
		return classify("lock trade date", err)
	}

	if err = fn(ctx, &materializationTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return classify("commit materialization", err)
	}
	return nil
}

// dateKey maps a calendar date to days since the Unix epoch.
func dateKey(d time.Time) int32 {
	return int32(models.TruncateToDate(d).Unix() / 86400)
}

type materializationTx struct {
	tx *sql.Tx
}

func (t *materializationTx) PriceFactsForDate(ctx context.Context, tradeDate time.Time) ([]models.PriceFact, error) {
	rows, err := t.tx.QueryContext(ctx, priceFactsForDateSQL, tradeDate)
	if err != nil {
		return nil, classify("list price facts", err)
	}
	defer func() { _ = rows.Close() }()

	var facts []models.PriceFact
	for rows.Next() {
		var f models.PriceFact
		if err := rows.Scan(&f.CompanyID, &f.Symbol, &f.TradeDate, &f.Open, &f.Close, &f.High, &f.Low, &f.Volume); err != nil {
			return nil, fmt.Errorf("scan price fact: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list price facts", err)
	}
	return facts, nil
}

// InsertCompanyMetrics inserts each row unless its (symbol, trade_date) key exists.
// It returns how many rows were actually written.
func (t *materializationTx) InsertCompanyMetrics(ctx context.Context, rows []models.CompanyMetric) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := t.tx.PrepareContext(ctx, insertCompanyMetricSQL)
	if err != nil {
		return 0, classify("prepare company metrics insert", err)
	}
	defer func() { _ = stmt.Close() }()

	written := 0
	for _, m := range rows {
		res, err := stmt.ExecContext(ctx,
			m.Symbol,
			m.TradeDate,
			m.Open,
			m.Close,
			m.High,
			m.Low,
			m.Volume,
			m.Returns,
			m.Volatility,
		)
		if err != nil {
			return written, classify(fmt.Sprintf("insert company metric %s", m.Symbol), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += int(n)
		}
	}
	return written, nil
}

// InsertMarketOverview inserts the overview unless one exists for the date.
func (t *materializationTx) InsertMarketOverview(ctx context.Context, o models.MarketOverview) (bool, error) {
	res, err := t.tx.ExecContext(ctx, insertMarketOverviewSQL,
		o.TradeDate,
		o.TotalVolume,
		o.Advancers,
		o.Decliners,
		o.Unchanged,
		o.MarketCap,
	)
	if err != nil {
		return false, classify("insert market overview", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, nil
	}
	return n > 0, nil
}
