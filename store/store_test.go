package store

import (
	"sync"
	"testing"

	"go-canopy/types"
)

func TestCreateAndGetAlert(t *testing.T) {
	s := New()
	bbox := []float64{-63.0, -10.5, -62.0, -10.0}

	alert := s.CreateAlert(bbox)
	if alert.AlertID == "" {
		t.Fatal("alert has no ID")
	}
	if alert.Status != types.StatusPending {
		t.Errorf("status: got %s, want PENDING", alert.Status)
	}
	if alert.Timestamp == "" {
		t.Error("alert has no timestamp")
	}

	got, ok := s.GetAlert(alert.AlertID)
	if !ok {
		t.Fatal("created alert not found")
	}
	if got.AlertID != alert.AlertID {
		t.Errorf("got %s, want %s", got.AlertID, alert.AlertID)
	}

	if _, ok := s.GetAlert("nope"); ok {
		t.Error("unknown ID should not be found")
	}
}

func TestCreateAlertCopiesBbox(t *testing.T) {
	s := New()
	bbox := []float64{-63.0, -10.5, -62.0, -10.0}
	alert := s.CreateAlert(bbox)

	bbox[0] = 99
	got, _ := s.GetAlert(alert.AlertID)
	if got.Region[0] == 99 {
		t.Error("store aliases the caller's bbox slice")
	}
}

func TestUpdateAlert(t *testing.T) {
	s := New()
	alert := s.CreateAlert([]float64{0, 0, 1, 1})

	ok := s.UpdateAlert(alert.AlertID, func(a *types.AlertResponse) {
		a.Status = types.StatusCompleted
		a.Progress = 100
		a.PatchCount = 3
	})
	if !ok {
		t.Fatal("update reported missing alert")
	}

	got, _ := s.GetAlert(alert.AlertID)
	if got.Status != types.StatusCompleted || got.Progress != 100 || got.PatchCount != 3 {
		t.Errorf("update not applied: %+v", got)
	}

	if s.UpdateAlert("nope", func(a *types.AlertResponse) {}) {
		t.Error("update of unknown ID should report false")
	}
}

func TestListAlertsOrder(t *testing.T) {
	s := New()
	first := s.CreateAlert([]float64{0, 0, 1, 1})
	second := s.CreateAlert([]float64{1, 1, 2, 2})

	alerts := s.ListAlerts()
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].AlertID != first.AlertID || alerts[1].AlertID != second.AlertID {
		t.Error("alerts not in creation order")
	}
}

func TestRegions(t *testing.T) {
	s := New()
	region := s.CreateRegion("Rondonia", []float64{-63.0, -10.5, -62.0, -10.0}, "test region")
	if len(region.ID) != 8 {
		t.Errorf("region ID: got %q, want 8 characters", region.ID)
	}

	got, ok := s.GetRegion(region.ID)
	if !ok {
		t.Fatal("created region not found")
	}
	if got.Name != "Rondonia" || got.Description != "test region" {
		t.Errorf("region fields: %+v", got)
	}

	if regions := s.ListRegions(); len(regions) != 1 {
		t.Errorf("got %d regions, want 1", len(regions))
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := New()
	alert := s.CreateAlert([]float64{0, 0, 1, 1})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.UpdateAlert(alert.AlertID, func(a *types.AlertResponse) {
				a.PatchCount++
			})
		}()
	}
	wg.Wait()

	got, _ := s.GetAlert(alert.AlertID)
	if got.PatchCount != 50 {
		t.Errorf("lost updates: got %d, want 50", got.PatchCount)
	}
}
