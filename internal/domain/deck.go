package domain

import "math/rand/v2"

const (
	DeckSize       = 52
	NumFoundations = 4
	NumTableau     = 7
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type seededRNG struct {
	r *rand.Rand
}

func (s seededRNG) Intn(n int) int { return s.r.IntN(n) }

// NewSeededRNG returns an RNG whose sequence is fully determined by seed,
// so a deal can be replayed.
func NewSeededRNG(seed uint64) RNG {
	return seededRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// BuildDeck returns the 52 cards face-down, suit-major then rank-minor.
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes deck in place (Fisher-Yates).
func Shuffle(deck []Card, rng RNG) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Deal lays out a shuffled deck: column c of the tableau receives c+1
// cards with only the last one face-up, and the remaining cards form the
// face-down stock in their original relative order.
func Deal(deck []Card) Piles {
	var p Piles
	next := 0
	for col := range NumTableau {
		p.Tableau[col] = make(Pile, 0, col+1)
		for row := 0; row <= col; row++ {
			c := deck[next]
			next++
			c.FaceUp = row == col
			p.Tableau[col] = append(p.Tableau[col], c)
		}
	}

	p.Stock = make(Pile, 0, len(deck)-next)
	for _, c := range deck[next:] {
		c.FaceUp = false
		p.Stock = append(p.Stock, c)
	}
	p.Waste = Pile{}
	for i := range p.Foundations {
		p.Foundations[i] = Pile{}
	}
	return p
}
