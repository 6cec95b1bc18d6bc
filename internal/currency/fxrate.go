// Package currency looks up foreign-exchange rates from an external rate API,
// caching responses per base currency and day.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.exchangerate.host"
	cacheTTL       = time.Hour
)

// Service fetches and caches fx rates. A missing pair is reported as NaN with
// a nil error; callers that can proceed without a rate are expected to check
// math.IsNaN. Transport and decoding failures are returned as errors.
type Service struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	rates     map[string]float64
	fetchedAt time.Time
}

// NewService creates an fx-rate service against the given API base URL.
// An empty baseURL selects the default public endpoint.
func NewService(baseURL string, logger zerolog.Logger) *Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		cache:   make(map[string]cacheEntry),
	}
}

// GetFxRate returns the multiplicative factor converting from into to as of
// the given date. Same-currency pairs short-circuit to 1.
func (s *Service) GetFxRate(ctx context.Context, from, to string, asOf time.Time) (float64, error) {
	if from == to {
		return 1, nil
	}

	rates, err := s.ratesFor(ctx, from, asOf)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[to]
	if !ok || rate <= 0 {
		s.logger.Warn().Str("from", from).Str("to", to).Msg("fx rate unavailable for pair")
		return math.NaN(), nil
	}
	return rate, nil
}

func (s *Service) ratesFor(ctx context.Context, base string, asOf time.Time) (map[string]float64, error) {
	day := asOf.UTC().Format("2006-01-02")
	key := base + "@" + day

	s.mu.Lock()
	entry, ok := s.cache[key]
	s.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < cacheTTL {
		return entry.rates, nil
	}

	rates, err := s.fetch(ctx, base, asOf)
	if err != nil {
		// Serve a stale cache entry over failing the caller outright.
		if ok {
			s.logger.Warn().Err(err).Str("base", base).Msg("fx fetch failed, using cached rates")
			return entry.rates, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{rates: rates, fetchedAt: time.Now()}
	s.mu.Unlock()
	return rates, nil
}

func (s *Service) fetch(ctx context.Context, base string, asOf time.Time) (map[string]float64, error) {
	// Historical dates hit the dated endpoint; anything recent uses latest.
	path := "/latest"
	if time.Since(asOf) > 24*time.Hour {
		path = "/" + asOf.UTC().Format("2006-01-02")
	}
	url := fmt.Sprintf("%s%s?base=%s", s.baseURL, path, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fx rates for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fx rate API returned %d for %s", resp.StatusCode, base)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fx rate response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("fx rate API returned no rates for %s", base)
	}
	return payload.Rates, nil
}
