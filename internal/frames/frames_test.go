package frames

import (
	"testing"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

func entry(method, payload string) string {
	return `{"message":{"method":"` + method + `","params":{"response":{"payloadData":"` + payload + `"}}}}`
}

func TestExtractReceivedAndSent(t *testing.T) {
	raw := []string{
		entry("Network.webSocketFrameReceived", "hello"),
		entry("Network.webSocketFrameSent", "world"),
	}

	frames := Extract(raw)

	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Direction != model.In || frames[0].Payload != "hello" {
		t.Errorf("unexpected first frame: %+v", frames[0])
	}
	if frames[1].Direction != model.Out || frames[1].Payload != "world" {
		t.Errorf("unexpected second frame: %+v", frames[1])
	}
}

func TestExtractSkipsMalformedEntries(t *testing.T) {
	raw := []string{
		"not json at all",
		`{"message": 42}`,
		entry("Network.webSocketFrameReceived", "survivor"),
	}

	frames := Extract(raw)

	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Payload != "survivor" {
		t.Errorf("expected payload 'survivor', got %q", frames[0].Payload)
	}
}

func TestExtractDropsOtherNetworkEvents(t *testing.T) {
	raw := []string{
		entry("Network.requestWillBeSent", "x"),
		entry("Network.responseReceived", "y"),
		entry("Page.loadEventFired", "z"),
	}

	if frames := Extract(raw); len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}

func TestExtractPreservesOrder(t *testing.T) {
	raw := []string{
		entry("Network.webSocketFrameReceived", "a"),
		"garbage in the middle",
		entry("Network.webSocketFrameSent", "b"),
		entry("Network.webSocketFrameReceived", "c"),
	}

	frames := Extract(raw)

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	want := []string{"a", "b", "c"}
	for i, p := range want {
		if frames[i].Payload != p {
			t.Errorf("frame %d: expected payload %q, got %q", i, p, frames[i].Payload)
		}
	}
}

func TestExtractEmptyInput(t *testing.T) {
	if frames := Extract(nil); len(frames) != 0 {
		t.Errorf("expected no frames from nil input, got %d", len(frames))
	}
}
