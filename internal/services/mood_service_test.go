package services

import (
	"testing"
	"time"
)

func TestMoodServiceLog(t *testing.T) {
	store := newStubStore()
	activeStubPair(store, "P1")
	svc := NewMoodService(store)

	ping, err := svc.Log(LogInput{PairID: "P1", UserID: "u-creator", MoodEmoji: "\U0001F642", MoodValue: "calm", Intensity: 2, Tag: "work"})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if ping.ID == "" || ping.Timestamp.IsZero() {
		t.Fatalf("id/timestamp not assigned: %+v", ping)
	}
	if len(store.moods) != 1 {
		t.Fatalf("ping not persisted")
	}
}

func TestMoodServiceLogValidation(t *testing.T) {
	store := newStubStore()
	activeStubPair(store, "P1")
	svc := NewMoodService(store)

	cases := []struct {
		name string
		in   LogInput
		code ErrorCode
	}{
		{"missing fields", LogInput{PairID: "P1", Intensity: 2}, ErrorInvalid},
		{"intensity low", LogInput{PairID: "P1", UserID: "u", MoodEmoji: "x", Intensity: 0}, ErrorInvalid},
		{"intensity high", LogInput{PairID: "P1", UserID: "u", MoodEmoji: "x", Intensity: 6}, ErrorInvalid},
		{"unknown pair", LogInput{PairID: "zzz", UserID: "u", MoodEmoji: "x", Intensity: 3}, ErrorNotFound},
	}
	for _, c := range cases {
		_, err := svc.Log(c.in)
		se, ok := AsServiceError(err)
		if !ok || se.Code != c.code {
			t.Fatalf("%s: expected %s, got %v", c.name, c.code, err)
		}
	}
}

func TestMoodServiceListDefaultsToSevenDays(t *testing.T) {
	store := newStubStore()
	activeStubPair(store, "P1")
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store.AddMoodPing(&MoodPing{ID: "recent", PairID: "P1", Timestamp: now.AddDate(0, 0, -2)})
	store.AddMoodPing(&MoodPing{ID: "stale", PairID: "P1", Timestamp: now.AddDate(0, 0, -12)})

	svc := NewMoodService(store)
	svc.now = func() time.Time { return now }

	pings, err := svc.List("P1", 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(pings) != 1 || pings[0].ID != "recent" {
		t.Fatalf("default 7-day window failed: %+v", pings)
	}
}
