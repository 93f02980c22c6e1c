package socketio

import (
	"reflect"
	"testing"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

func TestDecodeEventMessage(t *testing.T) {
	ev, ok := Decode(model.Frame{Direction: model.In, Payload: `42["priceUpdate",{"x":1}]`})

	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Name != "priceUpdate" {
		t.Errorf("expected name 'priceUpdate', got %v", ev.Name)
	}
	want := []any{map[string]any{"x": float64(1)}}
	if !reflect.DeepEqual(ev.Args, want) {
		t.Errorf("expected args %v, got %v", want, ev.Args)
	}
	if ev.Direction != model.In {
		t.Errorf("expected direction in, got %s", ev.Direction)
	}
}

func TestDecodeRejectsNonEventTags(t *testing.T) {
	payloads := []string{
		`0{"sid":"abc"}`,       // engine.io open
		`3`,                    // pong
		`40`,                   // socket.io connect
		`41`,                   // socket.io disconnect
		``,                     // empty
		`["event",1]`,          // untagged array
		`2probe`,               // ping probe
	}

	for _, p := range payloads {
		if _, ok := Decode(model.Frame{Payload: p}); ok {
			t.Errorf("payload %q should not decode", p)
		}
	}
}

func TestDecodeRejectsMalformedBody(t *testing.T) {
	payloads := []string{
		`42`,                // no body
		`42{not json`,       // broken JSON
		`42{"a":1}`,         // object, not array
		`42[]`,              // empty array
		`42"event"`,         // bare string
	}

	for _, p := range payloads {
		if _, ok := Decode(model.Frame{Payload: p}); ok {
			t.Errorf("payload %q should not decode", p)
		}
	}
}

func TestDecodeNonStringEventName(t *testing.T) {
	// The first element is propagated whatever its JSON type is.
	ev, ok := Decode(model.Frame{Payload: `42[7,"arg"]`})

	if !ok {
		t.Fatal("expected a decoded event")
	}
	if ev.Name != float64(7) {
		t.Errorf("expected numeric name 7, got %v", ev.Name)
	}
	if len(ev.Args) != 1 || ev.Args[0] != "arg" {
		t.Errorf("unexpected args: %v", ev.Args)
	}
}

func TestDecodeNoArgs(t *testing.T) {
	ev, ok := Decode(model.Frame{Payload: `42["ping"]`})

	if !ok {
		t.Fatal("expected a decoded event")
	}
	if len(ev.Args) != 0 {
		t.Errorf("expected no args, got %v", ev.Args)
	}
}
