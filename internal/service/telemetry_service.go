package service

import (
	"log"
	"sync"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/repository"
)

// eventQueueSize bounds the telemetry write queue. Transitions arriving while
// the queue is full are dropped with a log line; the orchestrator must never
// wait on telemetry.
const eventQueueSize = 256

// TelemetryService persists orchestrator transitions and serves them back for
// the developer API. It implements advisor.Observer: ObserveTransition only
// enqueues, a single background writer does the inserts, so observation never
// blocks the state machine and cannot alter a transition's outcome.
type TelemetryService struct {
	telemetryRepo *repository.TelemetryRepository
	events        chan model.FetchEvent
	done          chan struct{}
	closeOnce     sync.Once
}

// NewTelemetryService creates a TelemetryService and starts its writer.
// Callers must Close it to flush pending events.
func NewTelemetryService(telemetryRepo *repository.TelemetryRepository) *TelemetryService {
	s := &TelemetryService{
		telemetryRepo: telemetryRepo,
		events:        make(chan model.FetchEvent, eventQueueSize),
		done:          make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

// ObserveTransition records an orchestrator transition. Non-blocking: when
// the queue is full the event is dropped and logged.
func (s *TelemetryService) ObserveTransition(t advisor.Transition) {
	event := model.FetchEvent{
		RequestID: t.RequestID,
		FromState: string(t.From),
		ToState:   string(t.To),
		Attempt:   t.Attempt,
		Channel:   string(t.Channel),
		CreatedAt: t.At,
	}
	if t.Err != nil {
		event.ErrorKind = string(advisor.KindOf(t.Err))
		event.ErrorMessage = t.Err.Error()
	}

	select {
	case s.events <- event:
	default:
		log.Printf("telemetry queue full, dropping event for request %s", t.RequestID)
	}
}

// GetEvents retrieves fetch events matching the filter, newest first.
func (s *TelemetryService) GetEvents(filter model.FetchEventFilter) ([]model.FetchEvent, error) {
	return s.telemetryRepo.GetEvents(filter)
}

// PurgeBefore deletes events created before the cutoff and reports the count.
func (s *TelemetryService) PurgeBefore(cutoff time.Time) (int64, error) {
	return s.telemetryRepo.DeleteEventsBefore(cutoff)
}

// Close stops accepting events and waits for the writer to drain the queue.
func (s *TelemetryService) Close() {
	s.closeOnce.Do(func() {
		close(s.events)
		<-s.done
	})
}

func (s *TelemetryService) writeLoop() {
	defer close(s.done)
	for event := range s.events {
		if err := s.telemetryRepo.InsertEvent(event); err != nil {
			log.Printf("failed to record fetch event for request %s: %v", event.RequestID, err)
		}
	}
}
