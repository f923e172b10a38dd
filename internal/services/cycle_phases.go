package services

import "time"

type CyclePhase string

const (
	PhaseNone       CyclePhase = ""
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulatory  CyclePhase = "ovulatory"
	PhaseLuteal     CyclePhase = "luteal"
)

// phaseOrder is both the display order and the priority used to resolve
// overlapping windows.
var phaseOrder = [...]CyclePhase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal}

const (
	menstrualPhaseDays  = 5
	follicularPhaseDays = 13
	ovulatoryPhaseDays  = 3
)

type PhaseWindow struct {
	Phase CyclePhase     `json:"phase"`
	Start time.Time      `json:"start"`
	End   time.Time      `json:"end"`
	Mood  MoodPrediction `json:"mood"`
}

func (window PhaseWindow) Contains(day time.Time) bool {
	return betweenInclusive(dateOnly(day), window.Start, window.End)
}

type CyclePhases struct {
	Current CyclePhase     `json:"current"`
	Next    CyclePhase     `json:"next"`
	Windows [4]PhaseWindow `json:"windows"`
}

func (phases CyclePhases) Window(phase CyclePhase) (PhaseWindow, bool) {
	for _, window := range phases.Windows {
		if window.Phase == phase {
			return window, true
		}
	}
	return PhaseWindow{}, false
}

// PhaseOn returns the first window in priority order containing day.
func (phases CyclePhases) PhaseOn(day time.Time) CyclePhase {
	for _, window := range phases.Windows {
		if window.Contains(day) {
			return window.Phase
		}
	}
	return PhaseNone
}

// SegmentPhases splits the cycle ending the day before nextPeriod into the
// four named windows. Menstrual and follicular both start on cycle day one,
// and luteal starts together with ovulatory; ties resolve in phaseOrder.
func SegmentPhases(nextPeriod time.Time, cycleLength int, today time.Time) CyclePhases {
	next := dateOnly(nextPeriod)
	periodStart := addDays(next, -cycleLength)

	menstrualEnd := addDays(periodStart, menstrualPhaseDays-1)
	follicularEnd := addDays(periodStart, follicularPhaseDays-1)
	ovulatoryStart := addDays(follicularEnd, 1)
	ovulatoryEnd := addDays(ovulatoryStart, ovulatoryPhaseDays-1)

	phases := CyclePhases{
		Windows: [4]PhaseWindow{
			{Phase: PhaseMenstrual, Start: periodStart, End: menstrualEnd},
			{Phase: PhaseFollicular, Start: periodStart, End: follicularEnd},
			{Phase: PhaseOvulatory, Start: ovulatoryStart, End: ovulatoryEnd},
			{Phase: PhaseLuteal, Start: ovulatoryStart, End: addDays(next, -1)},
		},
	}
	for i := range phases.Windows {
		phases.Windows[i].Mood, _ = MoodForPhase(phases.Windows[i].Phase)
	}

	phases.Current = phases.PhaseOn(today)
	phases.Next = NextPhase(phases.Current)
	return phases
}

// NextPhase returns the cyclic successor; an unknown phase restarts at menstrual.
func NextPhase(current CyclePhase) CyclePhase {
	for i, phase := range phaseOrder {
		if phase == current {
			return phaseOrder[(i+1)%len(phaseOrder)]
		}
	}
	return PhaseMenstrual
}
