package service_test

import (
	"testing"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/testutil"
)

// waitForEvents polls until the background writer has persisted the expected
// number of events, or fails the test.
func waitForEvents(t *testing.T, svc *service.TelemetryService, want int) []model.FetchEvent {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		events, err := svc.GetEvents(model.FetchEventFilter{})
		if err != nil {
			t.Fatalf("GetEvents() returned unexpected error: %v", err)
		}
		if len(events) >= want {
			return events
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d persisted events, got %d", want, len(events))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestTelemetryService_ObserveTransition tests transition persistence.
//
// WHY: The telemetry store is how failovers get diagnosed in the field. Every
// observed transition must land as a row, with the error classification
// extracted from the transition's cause.
func TestTelemetryService_ObserveTransition(t *testing.T) {
	t.Run("persists a clean transition", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTelemetryService(t, db)

		requestID := testutil.MakeID()
		svc.ObserveTransition(advisor.Transition{
			RequestID: requestID,
			From:      advisor.StateIdle,
			To:        advisor.StatePrimaryPending,
			Channel:   advisor.ChannelPrimary,
			At:        time.Now().UTC(),
		})

		events := waitForEvents(t, svc, 1)
		if events[0].RequestID != requestID {
			t.Errorf("Expected request ID %s, got %s", requestID, events[0].RequestID)
		}
		if events[0].FromState != "idle" || events[0].ToState != "primary_pending" {
			t.Errorf("Expected idle -> primary_pending, got %s -> %s", events[0].FromState, events[0].ToState)
		}
		if events[0].ErrorKind != "" {
			t.Errorf("Expected no error kind on a clean transition, got %q", events[0].ErrorKind)
		}
	})

	t.Run("extracts the error classification from the cause", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTelemetryService(t, db)

		svc.ObserveTransition(advisor.Transition{
			RequestID: testutil.MakeID(),
			From:      advisor.StateFallbackPending,
			To:        advisor.StateRetrying,
			Attempt:   1,
			Channel:   advisor.ChannelFallback,
			Err:       &advisor.FetchError{Kind: advisor.KindHTTPStatus, Status: 503},
			At:        time.Now().UTC(),
		})

		events := waitForEvents(t, svc, 1)
		if events[0].ErrorKind != "http_status" {
			t.Errorf("Expected error kind http_status, got %q", events[0].ErrorKind)
		}
		if events[0].ErrorMessage == "" {
			t.Error("Expected the error message to be recorded")
		}
		if events[0].Attempt != 1 {
			t.Errorf("Expected attempt 1, got %d", events[0].Attempt)
		}
	})
}

// TestTelemetryService_Close tests queue draining on shutdown.
//
// WHY: Events enqueued right before shutdown must still be written; Close
// blocks until the writer has drained the queue.
func TestTelemetryService_Close(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTelemetryService(t, db)

	for i := 0; i < 20; i++ {
		svc.ObserveTransition(advisor.Transition{
			RequestID: testutil.MakeID(),
			From:      advisor.StateIdle,
			To:        advisor.StatePrimaryPending,
			Channel:   advisor.ChannelPrimary,
			At:        time.Now().UTC(),
		})
	}

	svc.Close()

	events, err := svc.GetEvents(model.FetchEventFilter{})
	if err != nil {
		t.Fatalf("GetEvents() returned unexpected error: %v", err)
	}
	if len(events) != 20 {
		t.Errorf("Expected all 20 events drained before Close returned, got %d", len(events))
	}
}

// TestTelemetryService_PurgeBefore tests the purge passthrough.
//
// WHY: The developer API purges through the service; the deleted count must
// come back intact.
func TestTelemetryService_PurgeBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTelemetryService(t, db)

	cutoff := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	testutil.NewFetchEvent().WithCreatedAt(cutoff.Add(-time.Hour)).Build(t, db)
	testutil.NewFetchEvent().WithCreatedAt(cutoff.Add(time.Hour)).Build(t, db)

	deleted, err := svc.PurgeBefore(cutoff)
	if err != nil {
		t.Fatalf("PurgeBefore() returned unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted event, got %d", deleted)
	}
}
