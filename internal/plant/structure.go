package plant

// Structure is a serializable snapshot of a generated plant.
type Structure struct {
	Config   Config            `yaml:"config"`
	Growth   float64           `yaml:"growth"`
	Elapsed  float64           `yaml:"elapsed"`
	Branches []BranchStructure `yaml:"branches"`
	Flower   FlowerStructure   `yaml:"flower"`
}

// BranchStructure is one branch with its derived organs.
type BranchStructure struct {
	BranchSpec `yaml:",inline"`
	Scale      float64          `yaml:"scale"`
	Visible    bool             `yaml:"visible"`
	Leaves     []LeafSpec       `yaml:"leaves"`
	Flower     *FlowerStructure `yaml:"flower,omitempty"`
}

// FlowerStructure is a flower with its petals.
type FlowerStructure struct {
	FlowerSpec `yaml:",inline"`
	Petals     []PetalSpec `yaml:"petals"`
}

// Structure captures the current records and growth.
func (p *Plant) Structure() Structure {
	s := Structure{
		Config:   p.cfg,
		Growth:   p.growth.Progress(),
		Elapsed:  p.clock.Elapsed(),
		Branches: make([]BranchStructure, len(p.branches)),
	}
	for i, b := range p.branches {
		s.Branches[i] = BranchStructure{
			BranchSpec: b,
			Scale:      p.branchScale[i],
			Visible:    p.branchScale[i] > visibilityEpsilon,
		}
	}
	for _, ref := range p.leafRefs {
		bs := &s.Branches[ref.spec.Branch]
		bs.Leaves = append(bs.Leaves, ref.spec)
	}

	flowers := make(map[int]*FlowerStructure, len(p.flowers))
	for _, f := range p.flowers {
		fs := &FlowerStructure{FlowerSpec: f}
		flowers[f.Slot] = fs
		if f.Terminal() {
			continue
		}
		s.Branches[f.Slot].Flower = fs
	}
	for _, ref := range p.petalRefs {
		fs := flowers[ref.slot]
		fs.Petals = append(fs.Petals, ref.spec)
	}
	if fs, ok := flowers[TerminalSlot]; ok {
		s.Flower = *fs
	}
	return s
}
