package queue

import (
	"reflect"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		ProjectID:         "project-123",
		ActorID:           "faculty-456",
		TotalApplications: 12,
		Shortlisted:       5,
		Dropped:           2,
		DurationMs:        84000,
		EnqueuedAt:        "2026-08-30T22:00:00Z",
		Version:           1,
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestDecodeMessageRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeMessage([]byte(`{"projectId":`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
