package catalog

import "github.com/aretw0/vignette/pkg/domain"

// Default returns the built-in catalog used when no catalog file is configured.
func Default() *Catalog {
	return MustNew(defaultBlocks...)
}

var defaultBlocks = []domain.ActionBlock{
	{ID: "cat", Aliases: []string{"kitty", "kitten"}, Category: domain.CategoryAnimal, SupportsGroup: true, MaxCount: 5, SpreadDistance: 1.5, EnterStyle: domain.StyleWalk},
	{ID: "dog", Aliases: []string{"puppy", "doggo"}, Category: domain.CategoryAnimal, SupportsGroup: true, MaxCount: 4, SpreadDistance: 1.5, EnterStyle: domain.StyleBounce},
	{ID: "bird", Aliases: []string{"birds", "sparrow"}, Category: domain.CategoryAnimal, SupportsGroup: true, MaxCount: 6, SpreadDistance: 1, EnterStyle: domain.StyleFloat},
	{ID: "wizard", Aliases: []string{"mage", "sorcerer"}, Category: domain.CategoryCharacter, DefaultAnimation: "wave", EnterStyle: domain.StyleWalk, Effects: []string{"sparkles"}},
	{ID: "knight", Aliases: []string{"paladin"}, Category: domain.CategoryCharacter, DefaultAnimation: "idle", EnterStyle: domain.StyleWalk},
	{ID: "chef", Aliases: []string{"cook"}, Category: domain.CategoryCharacter, DefaultAnimation: "idle"},
	{ID: "robot", Aliases: []string{"bot", "android"}, Category: domain.CategoryCharacter, DefaultAnimation: "dance", EnterStyle: domain.StyleDropIn},
	{ID: "ghost", Aliases: []string{"spirit"}, Category: domain.CategoryCharacter, DefaultAnimation: "idle", EnterStyle: domain.StyleFloat},
	{ID: "dragon", Aliases: []string{"wyrm"}, Category: domain.CategoryCharacter, DefaultAnimation: "laugh", EnterStyle: domain.StyleFloat, MaxCount: 1, Effects: []string{"fire"}},
	{ID: "balloon", Aliases: []string{"balloons"}, Category: domain.CategoryProp, SupportsGroup: true, MaxCount: 6, SpreadDistance: 1, EnterStyle: domain.StyleFloat},
	{ID: "cake", Aliases: []string{"birthday-cake"}, Category: domain.CategoryProp},
	{ID: "pizza", Category: domain.CategoryProp, Effects: []string{"hearts"}},
	{ID: "rain", Category: domain.CategoryProcedural, Effects: []string{"notes"}},
	{ID: "sparkler-finale", Aliases: []string{"finale", "grand-finale"}, Category: domain.CategoryReactionCombo, Effects: []string{"confetti", "sparkles", "confetti"}},
	{ID: "party-time", Aliases: []string{"party"}, Category: domain.CategoryReactionCombo, Effects: []string{"confetti", "hearts"}},
	{ID: "kaboom", Aliases: []string{"boom"}, Category: domain.CategoryReactionCombo, Effects: []string{"explosion"}},
}
