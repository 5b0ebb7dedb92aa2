//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/guttosm/nsepulse/internal/domain/models"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "nsepulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=nsepulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "nsepulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

// seedFacts inserts two listings of ABC and one of XYZ for the given date, plus snapshots.
func seedFacts(t *testing.T, db *sql.DB, d time.Time) {
	t.Helper()
	mustExec := func(q string, args ...any) {
		if _, err := db.Exec(q, args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	mustExec(`INSERT INTO companies (id, symbol, series, name, sector) VALUES
		(1, 'ABC', 'EQ', 'Abc Ltd', 'IT'),
		(2, 'ABC', 'BE', 'Abc Ltd', 'IT'),
		(3, 'XYZ', 'EQ', 'Xyz Corp', NULL)`)
	mustExec(`INSERT INTO price_facts (company_id, trade_date, open, close, high, low, volume) VALUES
		(1, $1, 100, 110, 115, 95, 1000),
		(2, $1, 100,  90, 105, 85,  500),
		(3, $1,  50,  50,  52, 49,  200)`, d)
	mustExec(`INSERT INTO daily_snapshots (company_id, trade_date, daily_return, volatility_30d) VALUES
		(3, $1, 0.02, NULL),
		(1, $1, 0.02, 0.31)`, d)
}

func materializeAll(ctx context.Context, repo *Repository, d time.Time) (written int, overview bool, err error) {
	err = repo.Materialize(ctx, d, func(ctx context.Context, tx MaterializationTx) error {
		facts, err := tx.PriceFactsForDate(ctx, d)
		if err != nil {
			return err
		}
		bySymbol := map[string]models.CompanyMetric{}
		var order []string
		for _, f := range facts {
			if _, ok := bySymbol[f.Symbol]; !ok {
				order = append(order, f.Symbol)
			}
			bySymbol[f.Symbol] = models.CompanyMetric{
				Symbol:    f.Symbol,
				TradeDate: d,
				Close:     decimal.NewNullDecimal(f.Close),
			}
		}
		rows := make([]models.CompanyMetric, 0, len(order))
		for _, s := range order {
			rows = append(rows, bySymbol[s])
		}
		if written, err = tx.InsertCompanyMetrics(ctx, rows); err != nil {
			return err
		}
		overview, err = tx.InsertMarketOverview(ctx, models.MarketOverview{TradeDate: d})
		return err
	})
	return written, overview, err
}

func TestRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	seedFacts(t, db, d)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("facts grouped under stable symbol", func(t *testing.T) {
		var facts []models.PriceFact
		err := repo.Materialize(ctx, d, func(ctx context.Context, tx MaterializationTx) error {
			var err error
			facts, err = tx.PriceFactsForDate(ctx, d)
			return err
		})
		if err != nil {
			t.Fatalf("read facts: %v", err)
		}
		if len(facts) != 3 || facts[0].Symbol != "ABC" || facts[1].Symbol != "ABC" || facts[2].Symbol != "XYZ" {
			t.Fatalf("unexpected facts %+v", facts)
		}
	})

	t.Run("second run writes nothing", func(t *testing.T) {
		written, overview, err := materializeAll(ctx, repo, d)
		if err != nil || written != 2 || !overview {
			t.Fatalf("first run: written=%d overview=%v err=%v", written, overview, err)
		}
		written, overview, err = materializeAll(ctx, repo, d)
		if err != nil || written != 0 || overview {
			t.Fatalf("second run: written=%d overview=%v err=%v", written, overview, err)
		}
	})

	t.Run("concurrent runs serialize on the advisory lock", func(t *testing.T) {
		other := d.AddDate(0, 0, 1)
		seedOther := `INSERT INTO price_facts (company_id, trade_date, open, close, high, low, volume) VALUES (1, $1, 1, 2, 2, 1, 10)`
		if _, err := db.Exec(seedOther, other); err != nil {
			t.Fatalf("seed: %v", err)
		}
		var wg sync.WaitGroup
		results := make([]int, 4)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				n, _, err := materializeAll(ctx, repo, other)
				if err != nil {
					t.Errorf("run %d: %v", i, err)
				}
				results[i] = n
			}(i)
		}
		wg.Wait()
		total := 0
		for _, n := range results {
			total += n
		}
		if total != 1 {
			t.Fatalf("exactly one run should write, total=%d", total)
		}
	})

	t.Run("rollback leaves no partial rows", func(t *testing.T) {
		other := d.AddDate(0, 0, 2)
		boom := fmt.Errorf("boom")
		err := repo.Materialize(ctx, other, func(ctx context.Context, tx MaterializationTx) error {
			if _, err := tx.InsertCompanyMetrics(ctx, []models.CompanyMetric{{Symbol: "ABC", TradeDate: other}}); err != nil {
				return err
			}
			return boom
		})
		if err != boom {
			t.Fatalf("want boom, got %v", err)
		}
		m, err := repo.CompanyMetric(ctx, "ABC", other)
		if err != nil || m != nil {
			t.Fatalf("want no row, got m=%+v err=%v", m, err)
		}
	})

	t.Run("reads", func(t *testing.T) {
		m, err := repo.CompanyMetric(ctx, "ABC", d)
		if err != nil || m == nil {
			t.Fatalf("company metric: m=%+v err=%v", m, err)
		}
		if none, err := repo.CompanyMetric(ctx, "ABC", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil || none != nil {
			t.Fatalf("far future should be empty: %+v %v", none, err)
		}

		snaps, err := repo.Snapshots(ctx, d)
		if err != nil || len(snaps) != 2 || snaps[0].Symbol != "XYZ" || snaps[1].Symbol != "ABC" {
			t.Fatalf("snapshots in insertion order: %+v err=%v", snaps, err)
		}
		if snaps[0].Sector.Valid {
			t.Fatalf("XYZ has no sector")
		}

		hist, err := repo.CompanyHistory(ctx, "ABC", d, d.AddDate(0, 0, 1))
		if err != nil || len(hist) != 2 || !hist[0].TradeDate.Equal(d) {
			t.Fatalf("inclusive history: %+v err=%v", hist, err)
		}

		trends, err := repo.MarketTrends(ctx, 30)
		if err != nil || len(trends) != 2 || !trends[0].TradeDate.After(trends[1].TradeDate) {
			t.Fatalf("trends newest first: %+v err=%v", trends, err)
		}
	})
}
