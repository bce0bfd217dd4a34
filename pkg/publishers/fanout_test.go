package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}
func (s *stubPublisher) Close() error {
	s.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		&stubPublisher{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

func TestFanoutCloseClosesAll(t *testing.T) {
	a := &stubPublisher{id: "a", typ: "http"}
	b := &stubPublisher{id: "b", typ: "sqs"}
	fanout := NewFanout([]Publisher{a, nil, b})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers to be dropped, size=%d", fanout.Size())
	}
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatalf("expected all publishers closed")
	}
}

func TestLoadFanoutEmptyPath(t *testing.T) {
	fanout, err := LoadFanout(context.Background(), "  ", nil)
	if err != nil {
		t.Fatalf("LoadFanout: %v", err)
	}
	if fanout.Size() != 0 {
		t.Fatalf("expected empty fanout, got %d", fanout.Size())
	}
	n, err := fanout.Publish(context.Background(), Event{})
	if n != 0 || err != nil {
		t.Fatalf("empty fanout publish = %d, %v", n, err)
	}
}
