package engine

import (
	"testing"
	"time"
)

func TestBusSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	var got []Message

	bus.Subscribe("x", func(m Message) {
		order = append(order, "L1")
		got = append(got, m)
	})
	bus.Subscribe("x", func(m Message) {
		order = append(order, "L2")
		got = append(got, m)
	})

	data := map[string]any{"value": 42}
	before := time.Now()
	bus.Publish("x", data)

	if len(order) != 2 || order[0] != "L1" || order[1] != "L2" {
		t.Errorf("dispatch order = %v, expected [L1 L2]", order)
	}
	for i, m := range got {
		if m.Type != "x" {
			t.Errorf("listener %d got type %q", i, m.Type)
		}
		if m.Data["value"] != 42 {
			t.Errorf("listener %d got data %v", i, m.Data)
		}
		if m.Timestamp.Before(before) {
			t.Errorf("listener %d timestamp %v precedes publish time %v", i, m.Timestamp, before)
		}
	}
	// All listeners observe the same map instance.
	got[0].Data["probe"] = true
	if got[1].Data["probe"] != true {
		t.Error("listeners received different data maps, expected shared reference")
	}
}

func TestBusReentrantPublishDeferred(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe("y", func(m Message) {
		order = append(order, "y1")
	})
	bus.Subscribe("x", func(m Message) {
		order = append(order, "x1")
		// Published mid-dispatch: must run after x's wave, never nested.
		bus.Publish("y", nil)
	})
	bus.Subscribe("x", func(m Message) {
		order = append(order, "x2")
	})

	bus.Publish("x", nil)

	expected := []string{"x1", "x2", "y1"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", order, expected)
		}
	}
}

func TestBusBreadthFirstWaves(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe("a", func(m Message) {
		order = append(order, "a")
		bus.Publish("b", nil)
		bus.Publish("c", nil)
	})
	bus.Subscribe("b", func(m Message) {
		order = append(order, "b")
		bus.Publish("d", nil)
	})
	bus.Subscribe("c", func(m Message) { order = append(order, "c") })
	bus.Subscribe("d", func(m Message) { order = append(order, "d") })

	bus.Publish("a", nil)

	// b and c were queued during a's wave; d during b's wave, so it runs
	// after c: breadth-first across waves.
	expected := []string{"a", "b", "c", "d"}
	for i := range expected {
		if i >= len(order) || order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", order, expected)
		}
	}
}

func TestBusListenerPanicIsolated(t *testing.T) {
	bus := NewBus()
	var secondRan bool

	bus.Subscribe("x", func(m Message) {
		panic("broken subscriber")
	})
	bus.Subscribe("x", func(m Message) {
		secondRan = true
	})

	// Must not propagate to the publisher.
	bus.Publish("x", nil)

	if !secondRan {
		t.Error("listener after the panicking one did not run")
	}
	if bus.Stats().Recovered != 1 {
		t.Errorf("recovered = %d, expected 1", bus.Stats().Recovered)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	var calls []string

	unsub := bus.Subscribe("x", func(m Message) { calls = append(calls, "first") })
	bus.Subscribe("x", func(m Message) { calls = append(calls, "second") })

	unsub()
	bus.Publish("x", nil)

	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, expected [second]", calls)
	}

	// Unsubscribing twice is harmless.
	unsub()
	if bus.ListenerCount("x") != 1 {
		t.Errorf("ListenerCount = %d, expected 1", bus.ListenerCount("x"))
	}
}

func TestBusTopicEntryRemovedWhenEmpty(t *testing.T) {
	bus := NewBus()
	unsub := bus.Subscribe("x", func(m Message) {})
	unsub()

	if _, ok := bus.listeners["x"]; ok {
		t.Error("empty topic entry kept, expected removal for sparse maps")
	}
}

func TestBusDuplicateSubscriptionsBothFire(t *testing.T) {
	bus := NewBus()
	count := 0
	fn := func(m Message) { count++ }

	bus.Subscribe("x", fn)
	bus.Subscribe("x", fn)
	bus.Publish("x", nil)

	if count != 2 {
		t.Errorf("count = %d, expected 2 (duplicates both fire)", count)
	}
}

func TestBusUnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	var order []string
	var unsubSecond func()

	bus.Subscribe("x", func(m Message) {
		order = append(order, "first")
		// Removing a later listener mid-dispatch must not corrupt the
		// in-progress iteration; the snapshot still fires it this wave.
		unsubSecond()
	})
	unsubSecond = bus.Subscribe("x", func(m Message) {
		order = append(order, "second")
	})

	bus.Publish("x", nil)
	if len(order) != 2 {
		t.Fatalf("first wave order = %v, expected both listeners", order)
	}

	order = nil
	bus.Publish("x", nil)
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("second wave order = %v, expected [first]", order)
	}
}

func TestBusFastPublishDispatchesNested(t *testing.T) {
	bus := NewBus(WithFastTopics("hot"))
	var order []string

	bus.Subscribe("hot", func(m Message) { order = append(order, "hot") })
	bus.Subscribe("x", func(m Message) {
		order = append(order, "x")
		// Fast topics bypass the queue even mid-dispatch.
		bus.Publish("hot", nil)
		order = append(order, "x-after")
	})

	bus.Publish("x", nil)

	expected := []string{"x", "hot", "x-after"}
	for i := range expected {
		if i >= len(order) || order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", order, expected)
		}
	}
}

func TestBusForwardingToPrimary(t *testing.T) {
	primary := NewBus()
	secondary := NewBus(WithForwarding(primary, TopicGameOver))

	var primaryGot, secondaryGot int
	primary.Subscribe(TopicGameOver, func(m Message) { primaryGot++ })
	secondary.Subscribe(TopicGameOver, func(m Message) { secondaryGot++ })

	secondary.Publish(TopicGameOver, map[string]any{"score": 10})

	if primaryGot != 1 {
		t.Errorf("primary received %d, expected 1", primaryGot)
	}
	if secondaryGot != 0 {
		t.Errorf("secondary received %d, expected 0 (forwarded, not local)", secondaryGot)
	}

	// Non-designated topics stay local.
	var local int
	secondary.Subscribe("x", func(m Message) { local++ })
	secondary.Publish("x", nil)
	if local != 1 {
		t.Errorf("local topic received %d, expected 1", local)
	}
}

func TestBusDeterministicClock(t *testing.T) {
	fixed := time.Unix(42, 0)
	bus := NewBus(WithClock(func() time.Time { return fixed }))

	var got time.Time
	bus.Subscribe("x", func(m Message) { got = m.Timestamp })
	bus.Publish("x", nil)

	if !got.Equal(fixed) {
		t.Errorf("timestamp = %v, expected %v", got, fixed)
	}
}
