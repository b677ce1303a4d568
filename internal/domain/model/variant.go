package model

// Variant describes one supported lottery game: its wire name, the URL
// slug and ball CSS class used by the results site, and the inclusive
// upper bounds of its number ranges.
type Variant struct {
	Name       string
	Slug       string
	BallClass  string
	MaxRegular int
	MaxSpecial int
}

// The two supported games.
var (
	Powerball = Variant{
		Name:       "powerball",
		Slug:       "powerball",
		BallClass:  "powerball",
		MaxRegular: 69,
		MaxSpecial: 26,
	}
	MegaMillions = Variant{
		Name:       "mega-millions",
		Slug:       "mega-millions",
		BallClass:  "mega-ball",
		MaxRegular: 70,
		MaxSpecial: 25,
	}
)

// Variants lists every supported game, in publishing order.
func Variants() []Variant {
	return []Variant{Powerball, MegaMillions}
}

// VariantByName resolves a wire name like "powerball". The second return
// is false for unknown games.
func VariantByName(name string) (Variant, bool) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
