package service

import "strings"

// alphabetSize is the number of distinct letters a pool can hold.
const alphabetSize = 26

type letterWeight struct {
	letter rune
	weight int
}

// letterWeights follows English tile frequencies: vowels and common
// consonants are drawn far more often than Q, X or Z.
var letterWeights = []letterWeight{
	{'A', 9}, {'B', 2}, {'C', 2}, {'D', 4}, {'E', 12}, {'F', 2}, {'G', 3},
	{'H', 2}, {'I', 9}, {'J', 1}, {'K', 1}, {'L', 4}, {'M', 2}, {'N', 6},
	{'O', 8}, {'P', 2}, {'Q', 1}, {'R', 6}, {'S', 4}, {'T', 6}, {'U', 4},
	{'V', 2}, {'W', 2}, {'X', 1}, {'Y', 2}, {'Z', 1},
}

// LetterPoolGenerator draws spelling-round letter pools.
type LetterPoolGenerator struct {
	rng Random
}

// NewLetterPoolGenerator creates a generator using rng.
func NewLetterPoolGenerator(rng Random) *LetterPoolGenerator {
	return &LetterPoolGenerator{rng: rng}
}

// Generate returns amount distinct uppercase letters, amount clamped to [0, 26].
//
// Letters are drawn one at a time by weight; a drawn letter leaves the bag,
// which is the same distribution as redrawing on repeats but always finishes
// in exactly amount draws.
func (g *LetterPoolGenerator) Generate(amount int) []string {
	amount = min(max(amount, 0), alphabetSize)

	bag := make([]letterWeight, len(letterWeights))
	copy(bag, letterWeights)

	total := 0
	for _, lw := range bag {
		total += lw.weight
	}

	pool := make([]string, 0, amount)
	for len(pool) < amount {
		pick := g.rng.Intn(total)
		for i, lw := range bag {
			if pick < lw.weight {
				pool = append(pool, string(lw.letter))
				total -= lw.weight
				bag = append(bag[:i], bag[i+1:]...)
				break
			}
			pick -= lw.weight
		}
	}

	return pool
}

// normalizeLetters upper-cases and trims client-supplied pool letters.
func normalizeLetters(letters []string) []string {
	out := make([]string, 0, len(letters))
	for _, l := range letters {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
