package models

type SymptomSet struct {
	Cramps           bool `json:"cramps"`
	Headache         bool `json:"headache"`
	Bloating         bool `json:"bloating"`
	BackPain         bool `json:"backPain"`
	BreastTenderness bool `json:"breastTenderness"`
	Fatigue          bool `json:"fatigue"`
	MoodChanges      bool `json:"moodChanges"`
	Acne             bool `json:"acne"`
}

// PerimenopauseSymptomSet is recorded only while the perimenopause or
// menopause setting is enabled.
type PerimenopauseSymptomSet struct {
	HotFlashes      bool `json:"hotFlashes"`
	NightSweats     bool `json:"nightSweats"`
	VaginalDryness  bool `json:"vaginalDryness"`
	Insomnia        bool `json:"insomnia"`
	MoodSwings      bool `json:"moodSwings"`
	BrainFog        bool `json:"brainFog"`
	JointPain       bool `json:"jointPain"`
	DecreasedLibido bool `json:"decreasedLibido"`
}

type SymptomFlag struct {
	Key     string
	Present bool
}

func (set SymptomSet) Flags() []SymptomFlag {
	return []SymptomFlag{
		{Key: "cramps", Present: set.Cramps},
		{Key: "headache", Present: set.Headache},
		{Key: "bloating", Present: set.Bloating},
		{Key: "backPain", Present: set.BackPain},
		{Key: "breastTenderness", Present: set.BreastTenderness},
		{Key: "fatigue", Present: set.Fatigue},
		{Key: "moodChanges", Present: set.MoodChanges},
		{Key: "acne", Present: set.Acne},
	}
}

func (set PerimenopauseSymptomSet) Flags() []SymptomFlag {
	return []SymptomFlag{
		{Key: "hotFlashes", Present: set.HotFlashes},
		{Key: "nightSweats", Present: set.NightSweats},
		{Key: "vaginalDryness", Present: set.VaginalDryness},
		{Key: "insomnia", Present: set.Insomnia},
		{Key: "moodSwings", Present: set.MoodSwings},
		{Key: "brainFog", Present: set.BrainFog},
		{Key: "jointPain", Present: set.JointPain},
		{Key: "decreasedLibido", Present: set.DecreasedLibido},
	}
}

func (set SymptomSet) Any() bool {
	for _, flag := range set.Flags() {
		if flag.Present {
			return true
		}
	}
	return false
}
