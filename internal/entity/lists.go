package entity

// ResolutionLists is the user's pool of candidate texts a card is drawn from.
type ResolutionLists struct {
	Standard []string `json:"standard"`
	Boss     []string `json:"boss"`
}

func NewResolutionLists(standard, boss []string) *ResolutionLists {
	if standard == nil {
		standard = []string{}
	}

	if boss == nil {
		boss = []string{}
	}

	return &ResolutionLists{
		Standard: standard,
		Boss:     boss,
	}
}

func (that *ResolutionLists) IsEmpty() bool {
	return len(that.Standard) == 0 && len(that.Boss) == 0
}
