package domain

// SkillBands maps each scored skill to its estimated band.
type SkillBands map[Skill]float64

// BandProjection is the learner's current band estimate and where the
// observed improvement rate puts them in roughly a month. Confidence is a
// 0-95 percentage that grows with the number of completed goals.
type BandProjection struct {
	CurrentBand   float64    `json:"current_band"`
	SkillBands    SkillBands `json:"skill_bands"`
	TargetBand    float64    `json:"target_band"`
	ProjectedBand float64    `json:"projected_band"`
	Confidence    int        `json:"confidence"`
	Gap           float64    `json:"gap"`
}

// OnTrack reports whether the projected band reaches the target.
func (p *BandProjection) OnTrack() bool {
	return p.ProjectedBand >= p.TargetBand
}
