package domain

import (
	"testing"
	"time"
)

func TestEvent_Overlaps(t *testing.T) {
	base := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	at := func(offsetMinutes, durationMinutes int) *Event {
		return &Event{
			StartTime:       base.Add(time.Duration(offsetMinutes) * time.Minute),
			DurationMinutes: durationMinutes,
		}
	}

	tests := []struct {
		name string
		a, b *Event
		want bool
	}{
		{"identical windows", at(0, 120), at(0, 120), true},
		{"partial overlap", at(0, 120), at(60, 120), true},
		{"contained window", at(0, 180), at(30, 60), true},
		{"back to back", at(0, 120), at(120, 60), false},
		{"disjoint", at(0, 60), at(120, 60), false},
		{"b before a back to back", at(60, 60), at(0, 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvent_EndTime(t *testing.T) {
	e := &Event{
		StartTime:       time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	}
	want := time.Date(2026, 9, 5, 11, 30, 0, 0, time.UTC)
	if !e.EndTime().Equal(want) {
		t.Errorf("EndTime() = %v, want %v", e.EndTime(), want)
	}
}
