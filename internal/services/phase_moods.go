package services

type MoodPrediction struct {
	Mood        string `json:"mood"`
	Energy      string `json:"energy"`
	Description string `json:"description"`
}

// Fixed population-level defaults; nothing here is learned from history.
var phaseMoods = map[CyclePhase]MoodPrediction{
	PhaseMenstrual: {
		Mood:        "mixed",
		Energy:      "low",
		Description: "May experience relief from PMS symptoms but have lower energy.",
	},
	PhaseFollicular: {
		Mood:        "positive",
		Energy:      "increasing",
		Description: "Rising estrogen often brings improved mood and energy.",
	},
	PhaseOvulatory: {
		Mood:        "upbeat",
		Energy:      "high",
		Description: "Peak estrogen and testosterone typically brings peak energy and mood.",
	},
	PhaseLuteal: {
		Mood:        "variable",
		Energy:      "decreasing",
		Description: "Early phase is stable, later may bring PMS symptoms.",
	},
}

func MoodForPhase(phase CyclePhase) (MoodPrediction, bool) {
	mood, ok := phaseMoods[phase]
	return mood, ok
}
