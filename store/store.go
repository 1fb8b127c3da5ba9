// Package store is the in-memory alert and watched-region store.
// Nothing survives the process; the service makes no persistence
// guarantees beyond its lifetime.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"go-canopy/types"
)

// Store keeps alerts and watched regions keyed by ID.
type Store struct {
	mu      sync.RWMutex
	alerts  map[string]types.AlertResponse
	order   []string
	regions map[string]types.RegionResponse
	regOrder []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		alerts:  make(map[string]types.AlertResponse),
		regions: make(map[string]types.RegionResponse),
	}
}

// CreateAlert registers a PENDING alert for the given bbox.
func (s *Store) CreateAlert(bbox []float64) types.AlertResponse {
	alert := types.AlertResponse{
		AlertID:   uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Region:    append([]float64(nil), bbox...),
		Status:    types.StatusPending,
		Patches:   []types.PatchInfo{},
	}
	s.mu.Lock()
	s.alerts[alert.AlertID] = alert
	s.order = append(s.order, alert.AlertID)
	s.mu.Unlock()
	return alert
}

// GetAlert returns a copy of the alert, if present.
func (s *Store) GetAlert(id string) (types.AlertResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[id]
	return alert, ok
}

// UpdateAlert applies fn to the stored alert under the lock.
// Returns false when the alert does not exist.
func (s *Store) UpdateAlert(id string, fn func(*types.AlertResponse)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.alerts[id]
	if !ok {
		return false
	}
	fn(&alert)
	s.alerts[id] = alert
	return true
}

// ListAlerts returns all alerts in creation order.
func (s *Store) ListAlerts() []types.AlertResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.AlertResponse, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.alerts[id])
	}
	return out
}

// CreateRegion saves a watched region.
func (s *Store) CreateRegion(name string, bbox []float64, description string) types.RegionResponse {
	region := types.RegionResponse{
		ID:          uuid.NewString()[:8],
		Name:        name,
		Bbox:        append([]float64(nil), bbox...),
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.mu.Lock()
	s.regions[region.ID] = region
	s.regOrder = append(s.regOrder, region.ID)
	s.mu.Unlock()
	return region
}

// GetRegion returns a watched region, if present.
func (s *Store) GetRegion(id string) (types.RegionResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region, ok := s.regions[id]
	return region, ok
}

// ListRegions returns all watched regions in creation order.
func (s *Store) ListRegions() []types.RegionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.RegionResponse, 0, len(s.regOrder))
	for _, id := range s.regOrder {
		out = append(out, s.regions[id])
	}
	return out
}
