package api

import (
	"testing"
	"time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()
	topic := "solves"
	ch := b.Subscribe(topic)

	evt := SSEEvent{Type: "solve.completed", Data: map[string]any{"solveId": "s1"}}
	b.Publish(topic, evt)

	select {
	case got := <-ch:
		if got.Type != evt.Type {
			t.Fatalf("got type %s, want %s", got.Type, evt.Type)
		}
		if got.Data["solveId"].(string) != "s1" {
			t.Fatalf("bad payload: %+v", got.Data)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}

	b.Unsubscribe(topic, ch)
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("channel should be closed after unsubscribe")
		}
	case <-time.After(50 * time.Millisecond):
		// acceptable if already drained and closed
	}
}

func TestBrokerTopicsIsolated(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe("a")
	defer b.Unsubscribe("a", a)

	b.Publish("b", SSEEvent{Type: "solve.completed"})
	select {
	case evt := <-a:
		t.Fatalf("leaked event across topics: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}
