package metrics

import (
	"context"

	"github.com/kfarnes/mast/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records model
// lifecycle events on the sink. It stops when the context is canceled or
// the bus closes; the returned channel closes once every delivered event has
// been recorded.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink Sink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case FitEvent:
					_ = sink.RecordFit(e)
				case PredictionEvent:
					_ = sink.RecordPrediction(e)
				}
			}
		}
	}()
	return done
}
