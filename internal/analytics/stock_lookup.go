package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLookupTimeout = 2 * time.Second
	defaultLookupWorkers = 8
)

// ErrStockLookupTimeout is recorded for an item whose lookup outlived its bound.
var ErrStockLookupTimeout = errors.New("stock lookup timed out")

// StockLookup answers the current stock of a supply item from already resolved
// data. ok is false when the item has no stock row; err is set when the
// item's stock could not be resolved at all.
type StockLookup interface {
	CurrentStock(supplyID int64) (level domain.StockLevel, ok bool, err error)
}

// StockTable is an in-memory StockLookup
type StockTable struct {
	levels   map[int64]domain.StockLevel
	failures map[int64]error
}

// NewStockTable indexes stock levels by supply id. When an item has several
// rows the first one wins, so callers order rows by recency.
func NewStockTable(levels []domain.StockLevel) *StockTable {
	t := &StockTable{
		levels:   make(map[int64]domain.StockLevel, len(levels)),
		failures: make(map[int64]error),
	}
	for _, l := range levels {
		if _, exists := t.levels[l.SupplyID]; exists {
			continue
		}
		t.levels[l.SupplyID] = l
	}
	return t
}

// CurrentStock implements StockLookup.
func (t *StockTable) CurrentStock(supplyID int64) (domain.StockLevel, bool, error) {
	if err, failed := t.failures[supplyID]; failed {
		return domain.StockLevel{}, false, err
	}
	l, ok := t.levels[supplyID]
	return l, ok, nil
}

// Failed returns the number of items whose lookup failed.
func (t *StockTable) Failed() int {
	return len(t.failures)
}

// StockFetcher resolves one item's stock from a live store. A nil level with a
// nil error means the item has no stock row.
type StockFetcher interface {
	GetStockLevel(ctx context.Context, supplyID int64) (*domain.StockLevel, error)
}

// ResolveOptions bounds a fan-out stock resolution
type ResolveOptions struct {
	Timeout time.Duration
	Workers int
}

// ResolveStockTable fetches the stock of every listed item concurrently and
// folds the answers into a StockTable. Each lookup runs under its own timeout;
// a failed or slow item is recorded as failed and never cancels the others.
// The call returns once every item has been accounted for exactly once.
func ResolveStockTable(ctx context.Context, fetcher StockFetcher, supplyIDs []int64, opts ResolveOptions) *StockTable {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLookupTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultLookupWorkers
	}

	table := NewStockTable(nil)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(opts.Workers)

	for _, id := range supplyIDs {
		g.Go(func() error {
			level, err := fetchOne(ctx, fetcher, id, opts.Timeout)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				table.failures[id] = err
			case level != nil:
				table.levels[id] = *level
			}
			return nil
		})
	}

	// goroutines never return an error; failures live in the table
	_ = g.Wait()

	return table
}

func fetchOne(ctx context.Context, fetcher StockFetcher, supplyID int64, timeout time.Duration) (*domain.StockLevel, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type answer struct {
		level *domain.StockLevel
		err   error
	}
	done := make(chan answer, 1)
	go func() {
		level, err := fetcher.GetStockLevel(lookupCtx, supplyID)
		done <- answer{level: level, err: err}
	}()

	select {
	case a := <-done:
		if a.err != nil {
			return nil, fmt.Errorf("supply %d: %w", supplyID, a.err)
		}
		return a.level, nil
	case <-lookupCtx.Done():
		if errors.Is(lookupCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("supply %d: %w", supplyID, ErrStockLookupTimeout)
		}
		return nil, fmt.Errorf("supply %d: %w", supplyID, lookupCtx.Err())
	}
}

// SupplyIDs returns the distinct supply ids of the usage records in order of
// first appearance.
func SupplyIDs(usage []domain.UsageRecord) []int64 {
	seen := make(map[int64]struct{}, len(usage))
	ids := make([]int64, 0)
	for _, u := range usage {
		if _, ok := seen[u.SupplyID]; ok {
			continue
		}
		seen[u.SupplyID] = struct{}{}
		ids = append(ids, u.SupplyID)
	}
	return ids
}
