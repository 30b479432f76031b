package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"aurora-market/internal/models"
	"aurora-market/internal/repositories"
)

// RateService provides a best-effort live XMR/EUR rate for checkout.
//
// Upstream calls are rate-limited to two per day: a snapshot fetched in the
// current half-day slot (AM = before local noon, PM = after) is reused until
// the slot changes. The service re-arms a timer for the next slot boundary
// for as long as it is running, so the twice-daily cadence is a property of
// the service, not of any request lifecycle.
type RateService struct {
	apiURL   string
	fallback float64
	client   *http.Client
	store    repositories.RateSnapshotStore
	now      func() time.Time

	mu       sync.Mutex
	snapshot *models.RateSnapshot
	loading  bool
	lastErr  error
	timer    *time.Timer
	stopped  bool
}

// NewRateService creates a rate service backed by the given snapshot store
func NewRateService(apiURL string, fallback float64, timeout time.Duration, store repositories.RateSnapshotStore) *RateService {
	return &RateService{
		apiURL:   apiURL,
		fallback: fallback,
		client:   &http.Client{Timeout: timeout},
		store:    store,
		now:      time.Now,
	}
}

// Start performs the initial refresh in the background and schedules the
// next one for the upcoming slot boundary
func (s *RateService) Start() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	go s.refreshAndArm()
}

// Stop cancels the pending timer and suppresses any in-flight result
func (s *RateService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Quote returns the rate checkout should use. The value is always usable:
// the current snapshot when it is fresh for this slot, the hard-coded
// fallback otherwise.
func (s *RateService) Quote() models.RateQuote {
	s.mu.Lock()
	defer s.mu.Unlock()

	quote := models.RateQuote{
		EURPerXMR: s.fallback,
		Loading:   s.loading,
		Fallback:  true,
	}
	if s.lastErr != nil {
		quote.Error = s.lastErr.Error()
	}
	if s.snapshot.FreshAt(s.now()) {
		quote.EURPerXMR = s.snapshot.EURPerXMR
		quote.Date = s.snapshot.Date
		quote.Slot = s.snapshot.Slot
		quote.Fallback = false
	}
	return quote
}

// Refresh obtains a snapshot for the current slot: from the persisted cache
// when it is still fresh, otherwise from the upstream price API. A failed
// fetch records the error and writes nothing.
func (s *RateService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	err := s.refresh(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
	}
	s.mu.Unlock()
	return err
}

func (s *RateService) refresh(ctx context.Context) error {
	now := s.now()

	// Reuse the persisted snapshot if it is from this day and slot
	cached, err := s.store.Load(ctx)
	if err == nil && cached.FreshAt(now) {
		s.mu.Lock()
		if !s.stopped {
			s.snapshot = cached
		}
		s.mu.Unlock()
		return nil
	}
	if err != nil && !errors.Is(err, repositories.ErrSnapshotMiss) {
		log.Printf("rate snapshot load failed: %v", err)
	}

	rate, err := s.fetchRate(ctx)
	if err != nil {
		return err
	}

	snapshot := &models.RateSnapshot{
		EURPerXMR: rate,
		Date:      now.Format("2006-01-02"),
		Slot:      models.SlotFor(now),
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		// Non-fatal: the in-memory snapshot still serves this process
		log.Printf("rate snapshot save failed: %v", err)
	}

	s.mu.Lock()
	if !s.stopped {
		s.snapshot = snapshot
	}
	s.mu.Unlock()
	return nil
}

func (s *RateService) fetchRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch XMR price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("rate API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Monero struct {
			EUR float64 `json:"eur"`
		} `json:"monero"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if result.Monero.EUR <= 0 {
		return 0, fmt.Errorf("rate API returned non-positive rate %v", result.Monero.EUR)
	}
	return result.Monero.EUR, nil
}

func (s *RateService) refreshAndArm() {
	if err := s.Refresh(context.Background()); err != nil {
		log.Printf("rate refresh failed: %v", err)
	}
	s.armNext()
}

// armNext schedules the next refresh just past the upcoming slot boundary.
// The timer is armed only after the current fetch settles, so at most one
// fetch is ever in flight.
func (s *RateService) armNext() {
	now := s.now()
	// +1s buffer so timer granularity can't fire a moment before the boundary
	delay := nextSlotBoundary(now).Sub(now) + time.Second

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.refreshAndArm)
}

// nextSlotBoundary returns the next local noon or midnight, whichever is
// sooner
func nextSlotBoundary(now time.Time) time.Time {
	if now.Hour() < 12 {
		return time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
