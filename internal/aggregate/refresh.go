package aggregate

import (
	"context"
	"sync"

	"github.com/benchantech/practicelog/internal/store"
)

// DayFetcher resolves one (skill, day) pair to total minutes. Implementations
// never fail; unavailable data reads as 0.
type DayFetcher interface {
	FetchDay(ctx context.Context, slug, day string) int
}

// FetcherFunc adapts a plain function to the DayFetcher interface.
type FetcherFunc func(ctx context.Context, slug, day string) int

func (f FetcherFunc) FetchDay(ctx context.Context, slug, day string) int {
	return f(ctx, slug, day)
}

// fetchWorkers bounds concurrent upstream requests during a refresh.
const fetchWorkers = 8

// Refresher builds day-granularity series from the cache, fetching missing
// days from upstream and writing them through. Starting a new Refresh cancels
// any refresh still in flight, so only the latest request populates the cache.
type Refresher struct {
	st      *store.Store
	fetcher DayFetcher

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewRefresher(st *store.Store, fetcher DayFetcher) *Refresher {
	return &Refresher{st: st, fetcher: fetcher}
}

// begin cancels the previous in-flight refresh and registers a new one.
func (r *Refresher) begin(ctx context.Context) (context.Context, context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	return ctx, cancel
}

// Series assembles minutes for every (slug, day) pair. Cached days are served
// directly; the rest are fetched concurrently and written through before the
// series is returned. A canceled context leaves already-written entries in
// place and returns the error.
func (r *Refresher) Series(ctx context.Context, slugs, days []string) (*Series, error) {
	ctx, cancel := r.begin(ctx)
	defer cancel()

	s := &Series{
		Labels: days,
		Data:   make(map[string]map[string]int, len(slugs)),
	}

	type pair struct{ slug, day string }
	var misses []pair

	for _, slug := range slugs {
		s.Data[slug] = make(map[string]int, len(days))
		for _, day := range days {
			mins, ok, err := r.st.GetMinutes(slug, day)
			if err != nil {
				return nil, err
			}
			if !ok {
				misses = append(misses, pair{slug, day})
				continue
			}
			s.Data[slug][day] = mins
		}
	}

	if len(misses) == 0 {
		return s, nil
	}

	type result struct {
		pair
		mins int
	}
	jobs := make(chan pair)
	results := make(chan result)

	var wg sync.WaitGroup
	workers := fetchWorkers
	if len(misses) < workers {
		workers = len(misses)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				results <- result{pair: p, mins: r.fetcher.FetchDay(ctx, p.slug, p.day)}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, p := range misses {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// Writes stay on this goroutine so the store sees one writer.
	for res := range results {
		if err := ctx.Err(); err != nil {
			for range results {
			}
			return nil, err
		}
		if err := r.st.PutMinutes(res.slug, res.day, res.mins); err != nil {
			for range results {
			}
			return nil, err
		}
		s.Data[res.slug][res.day] = res.mins
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Invalidate drops cached entries for the given days so the next Series call
// re-fetches them.
func (r *Refresher) Invalidate(slugs, days []string) error {
	for _, slug := range slugs {
		for _, day := range days {
			if err := r.st.DeleteMinutes(slug, day); err != nil {
				return err
			}
		}
	}
	return nil
}
