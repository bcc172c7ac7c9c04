package events

import (
	"testing"
	"time"

	"github.com/jscyril/golang_video_player/api"
)

func TestPublishDeliversOnlySubscribedTypes(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(api.EventPlay, api.EventPause)
	defer sub.Unsubscribe()

	bus.Publish(api.MediaEvent{Type: api.EventTimeUpdate, Payload: time.Second})
	bus.Publish(api.MediaEvent{Type: api.EventPlay})

	select {
	case ev := <-sub.Events():
		if ev.Type != api.EventPlay {
			t.Errorf("got %v, want %v", ev.Type, api.EventPlay)
		}
	default:
		t.Fatal("expected a play event")
	}

	select {
	case ev := <-sub.Events():
		t.Errorf("unexpected event %v", ev.Type)
	default:
	}
}

func TestSubscribeAllTypes(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe()
	defer sub.Unsubscribe()

	for _, eventType := range api.AllEvents() {
		bus.Publish(api.MediaEvent{Type: eventType})
	}

	if got, want := len(sub.Events()), len(api.AllEvents()); got != want {
		t.Errorf("received %d events, want %d", got, want)
	}
}

func TestUnsubscribeClosesAndStopsDelivery(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(api.EventPlay)
	other := bus.Subscribe(api.EventPlay)
	defer other.Unsubscribe()

	sub.Unsubscribe()
	sub.Unsubscribe() // second call must not panic

	bus.Publish(api.MediaEvent{Type: api.EventPlay})

	if _, ok := <-sub.Events(); ok {
		t.Error("expected closed channel after Unsubscribe")
	}
	if len(other.Events()) != 1 {
		t.Error("other subscriber should still receive events")
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(api.EventPlay, api.EventPause)

	bus.Close()
	sub.Unsubscribe()

	if _, ok := <-sub.Events(); ok {
		t.Error("expected closed channel after Close")
	}

	late := bus.Subscribe(api.EventPlay)
	if _, ok := <-late.Events(); ok {
		t.Error("subscribing to a closed bus should yield a closed channel")
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(api.EventTimeUpdate)
	defer sub.Unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(api.MediaEvent{Type: api.EventTimeUpdate, Payload: time.Duration(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}
