package socketio

import (
	"fmt"
	"testing"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

// BenchmarkDecodeEvent measures decoding throughput for event frames.
func BenchmarkDecodeEvent(b *testing.B) {
	f := model.Frame{
		Direction: model.In,
		Payload:   `42["inventoryUpdate",{"data":{"inventory":[{"name":"Widget","price":250,"amount":2}]}}]`,
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Decode(f)
	}
}

// BenchmarkDecodeRejection measures the fast path for non-event frames.
func BenchmarkDecodeRejection(b *testing.B) {
	f := model.Frame{Direction: model.In, Payload: `3`}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Decode(f)
	}
}

// BenchmarkDecodeThroughput measures sustained frames/sec over a mixed batch.
func BenchmarkDecodeThroughput(b *testing.B) {
	frames := make([]model.Frame, 1000)
	for i := range frames {
		switch i % 4 {
		case 0:
			frames[i] = model.Frame{Payload: fmt.Sprintf(`42["priceUpdate",{"id":%d,"price":%d}]`, i, i*10)}
		case 1:
			frames[i] = model.Frame{Payload: `2`}
		case 2:
			frames[i] = model.Frame{Payload: fmt.Sprintf(`42["inventoryUpdate",{"inventory":[{"name":"item-%d","price":%d}]}]`, i, i)}
		case 3:
			frames[i] = model.Frame{Payload: `40`}
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Decode(frames[i%1000])
	}
}
