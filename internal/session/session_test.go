package session

import (
	"sync"
	"testing"
	"time"

	"github.com/collegechat/collegechat-go/internal/engine"
	"github.com/collegechat/collegechat-go/internal/knowledge"
	"github.com/collegechat/collegechat-go/internal/nlp"
)

type fixedPredictor struct{}

func (fixedPredictor) Predict(string) (string, float64) { return "greeting", 0.9 }

func testFactory() func() *engine.Engine {
	kb := knowledge.NewBase(
		knowledge.Info{Name: "Test College", Timings: "9 to 5"},
		map[string]knowledge.Program{},
		knowledge.FacultyTable{},
		knowledge.EventsTable{},
	)
	catalog := &knowledge.Catalog{Intents: []knowledge.Intent{
		{Tag: "greeting", Keywords: "hello hi hey", Responses: []string{"Hello!"}},
	}}
	return func() *engine.Engine {
		return engine.New(kb, catalog, fixedPredictor{}, nlp.Preprocess, func(int) int { return 0 }, 10)
	}
}

func newManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m := NewManager(testFactory(), ttl)
	t.Cleanup(m.Stop)
	return m
}

func TestAcquire_NewAndExisting(t *testing.T) {
	m := newManager(t, time.Minute)

	id := m.Acquire("")
	if id == "" {
		t.Fatal("Acquire should mint an id")
	}
	if m.Count() != 1 {
		t.Fatalf("Count = %d, want 1", m.Count())
	}

	if got := m.Acquire(id); got != id {
		t.Errorf("Acquire(%q) = %q, want same id", id, got)
	}
	if m.Count() != 1 {
		t.Errorf("existing id should not create a session")
	}

	if got := m.Acquire("unknown-id"); got == "unknown-id" {
		t.Error("unknown id should be replaced with a fresh one")
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}
}

func TestDo_SharesEngineState(t *testing.T) {
	m := newManager(t, time.Minute)
	id := m.Acquire("")

	ok := m.Do(id, func(e *engine.Engine) {
		e.Respond("hello")
	})
	if !ok {
		t.Fatal("Do should find the acquired session")
	}

	m.Do(id, func(e *engine.Engine) {
		if e.ContextLen() != 1 {
			t.Errorf("ContextLen = %d, want state to persist across Do calls", e.ContextLen())
		}
	})
}

func TestDo_UnknownSession(t *testing.T) {
	m := newManager(t, time.Minute)
	if m.Do("missing", func(*engine.Engine) {}) {
		t.Error("Do should report false for unknown sessions")
	}
}

func TestEvictIdle(t *testing.T) {
	m := newManager(t, 10*time.Millisecond)
	id := m.Acquire("")

	m.evictIdle(time.Now().Add(time.Second))
	if m.Count() != 0 {
		t.Fatalf("Count = %d after eviction, want 0", m.Count())
	}
	if m.Do(id, func(*engine.Engine) {}) {
		t.Error("evicted session should be gone")
	}
}

func TestDo_ConcurrentWithEviction(t *testing.T) {
	m := newManager(t, time.Minute)
	id := m.Acquire("")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				m.evictIdle(time.Now())
			}
		}
	}()

	for i := 0; i < 500; i++ {
		m.Do(id, func(*engine.Engine) {})
	}
	close(stop)
	wg.Wait()

	if !m.Do(id, func(*engine.Engine) {}) {
		t.Error("actively used session should survive idle eviction")
	}
}

func TestOnCount(t *testing.T) {
	m := newManager(t, time.Minute)
	var last int
	m.OnCount(func(n int) { last = n })

	m.Acquire("")
	m.Acquire("")
	if last != 2 {
		t.Errorf("OnCount saw %d, want 2", last)
	}

	m.evictIdle(time.Now().Add(2 * time.Minute))
	if last != 0 {
		t.Errorf("OnCount saw %d after eviction, want 0", last)
	}
}
