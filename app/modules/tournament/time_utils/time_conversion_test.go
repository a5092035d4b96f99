package tournamenttime

import (
	"testing"
	"time"

	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
)

func TestTimeParser_GetTimezoneFromInput(t *testing.T) {
	parser := NewTimeParser()

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"PST", "America/Los_Angeles", true},
		{"est", "America/New_York", true},
		{"America/Chicago", "America/Chicago", true},
		{"UTC", "UTC", true},
		{"NOPE", "", false},
	}

	for _, tt := range tests {
		got, found := parser.GetTimezoneFromInput(tt.input)
		if found != tt.found || got != tt.want {
			t.Errorf("GetTimezoneFromInput(%q) = (%q, %v), want (%q, %v)", tt.input, got, found, tt.want, tt.found)
		}
	}
}

func TestTimeParser_ParseScheduleInput(t *testing.T) {
	parser := NewTimeParser()

	// Anchor: 2026-03-02 10:00 UTC, a Monday.
	anchor := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	clock := &tournamentutil.FakeClock{
		NowFn: func() time.Time { return anchor },
	}

	t.Run("relative input resolves against the anchor", func(t *testing.T) {
		ts, err := parser.ParseScheduleInput("tomorrow at 6pm", "UTC", clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)
		if ts.AsTime() != want {
			t.Errorf("expected %v, got %v", want, ts.AsTime())
		}
	})

	t.Run("compact clock form is normalized", func(t *testing.T) {
		ts, err := parser.ParseScheduleInput("today at 630pm", "UTC", clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
		if ts.AsTime() != want {
			t.Errorf("expected %v, got %v", want, ts.AsTime())
		}
	})

	t.Run("past time is rejected", func(t *testing.T) {
		if _, err := parser.ParseScheduleInput("today at 8am", "UTC", clock); err == nil {
			t.Fatal("expected error for a start time in the past")
		}
	})

	t.Run("unknown timezone is rejected", func(t *testing.T) {
		if _, err := parser.ParseScheduleInput("tomorrow at 6pm", "XYZ", clock); err == nil {
			t.Fatal("expected error for unknown timezone")
		}
	})
}
