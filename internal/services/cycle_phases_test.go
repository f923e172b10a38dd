package services

import (
	"testing"
	"time"
)

func TestSegmentPhasesBoundariesForTwentyEightDayCycle(t *testing.T) {
	next := mustParseDay("2024-03-25")
	phases := SegmentPhases(next, 28, next)

	day := func(offset int) string {
		return FormatDay(next.AddDate(0, 0, offset))
	}
	want := []struct {
		phase CyclePhase
		start string
		end   string
	}{
		{PhaseMenstrual, day(-28), day(-24)},
		{PhaseFollicular, day(-28), day(-16)},
		{PhaseOvulatory, day(-15), day(-13)},
		{PhaseLuteal, day(-15), day(-1)},
	}

	for i, expected := range want {
		window := phases.Windows[i]
		if window.Phase != expected.phase {
			t.Fatalf("window %d: expected phase %s, got %s", i, expected.phase, window.Phase)
		}
		if FormatDay(window.Start) != expected.start || FormatDay(window.End) != expected.end {
			t.Fatalf("%s: expected [%s, %s], got [%s, %s]",
				window.Phase, expected.start, expected.end, FormatDay(window.Start), FormatDay(window.End))
		}
	}
}

func TestSegmentPhasesAttachesMoodTable(t *testing.T) {
	phases := SegmentPhases(mustParseDay("2024-03-25"), 28, mustParseDay("2024-03-01"))
	for _, window := range phases.Windows {
		mood, ok := MoodForPhase(window.Phase)
		if !ok {
			t.Fatalf("expected mood entry for %s", window.Phase)
		}
		if window.Mood != mood {
			t.Fatalf("%s: expected mood %#v, got %#v", window.Phase, mood, window.Mood)
		}
	}
}

func TestSegmentPhasesCurrentAndNext(t *testing.T) {
	next := mustParseDay("2024-03-25")

	tests := []struct {
		name        string
		today       time.Time
		wantCurrent CyclePhase
		wantNext    CyclePhase
	}{
		{name: "cycle day one prefers menstrual", today: next.AddDate(0, 0, -28), wantCurrent: PhaseMenstrual, wantNext: PhaseFollicular},
		{name: "last menstrual day", today: next.AddDate(0, 0, -24), wantCurrent: PhaseMenstrual, wantNext: PhaseFollicular},
		{name: "follicular after bleeding", today: next.AddDate(0, 0, -23), wantCurrent: PhaseFollicular, wantNext: PhaseOvulatory},
		{name: "ovulatory wins over luteal", today: next.AddDate(0, 0, -14), wantCurrent: PhaseOvulatory, wantNext: PhaseLuteal},
		{name: "luteal wraps to menstrual", today: next.AddDate(0, 0, -5), wantCurrent: PhaseLuteal, wantNext: PhaseMenstrual},
		{name: "before cycle start", today: next.AddDate(0, 0, -40), wantCurrent: PhaseNone, wantNext: PhaseMenstrual},
		{name: "on predicted period", today: next, wantCurrent: PhaseNone, wantNext: PhaseMenstrual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phases := SegmentPhases(next, 28, tt.today)
			if phases.Current != tt.wantCurrent {
				t.Fatalf("expected current %q, got %q", tt.wantCurrent, phases.Current)
			}
			if phases.Next != tt.wantNext {
				t.Fatalf("expected next %q, got %q", tt.wantNext, phases.Next)
			}
		})
	}
}

func TestSegmentPhasesIgnoresTimeOfDay(t *testing.T) {
	next := time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC)
	today := time.Date(2024, 2, 26, 23, 59, 0, 0, time.UTC)

	phases := SegmentPhases(next, 28, today)
	if phases.Current != PhaseMenstrual {
		t.Fatalf("expected menstrual on cycle day one, got %q", phases.Current)
	}
}

func TestNextPhase(t *testing.T) {
	tests := map[CyclePhase]CyclePhase{
		PhaseMenstrual:  PhaseFollicular,
		PhaseFollicular: PhaseOvulatory,
		PhaseOvulatory:  PhaseLuteal,
		PhaseLuteal:     PhaseMenstrual,
		PhaseNone:       PhaseMenstrual,
		"unknown":       PhaseMenstrual,
	}
	for current, want := range tests {
		if got := NextPhase(current); got != want {
			t.Fatalf("NextPhase(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestMoodForPhaseUnknown(t *testing.T) {
	if _, ok := MoodForPhase(PhaseNone); ok {
		t.Fatal("expected no mood for an undefined phase")
	}
	mood, ok := MoodForPhase(PhaseOvulatory)
	if !ok || mood.Energy != "high" || mood.Mood != "upbeat" {
		t.Fatalf("unexpected ovulatory mood %#v", mood)
	}
}
