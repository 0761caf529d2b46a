package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PileKind is the role a pile plays on the table.
type PileKind uint8

const (
	KindStock PileKind = iota
	KindWaste
	KindFoundation
	KindTableau
)

func (k PileKind) String() string {
	switch k {
	case KindStock:
		return "stock"
	case KindWaste:
		return "waste"
	case KindFoundation:
		return "foundation"
	case KindTableau:
		return "tableau"
	default:
		return "unknown"
	}
}

// PileRef is a typed handle to one pile. Index is only meaningful for
// foundations (0..3) and tableau columns (0..6).
type PileRef struct {
	Kind  PileKind
	Index int
}

func StockPile() PileRef { return PileRef{Kind: KindStock} }

func WastePile() PileRef { return PileRef{Kind: KindWaste} }

func FoundationPile(i int) PileRef { return PileRef{Kind: KindFoundation, Index: i} }

func TableauPile(i int) PileRef { return PileRef{Kind: KindTableau, Index: i} }

// Valid reports whether r names a pile that exists.
func (r PileRef) Valid() bool {
	switch r.Kind {
	case KindStock, KindWaste:
		return r.Index == 0
	case KindFoundation:
		return r.Index >= 0 && r.Index < NumFoundations
	case KindTableau:
		return r.Index >= 0 && r.Index < NumTableau
	default:
		return false
	}
}

func (r PileRef) String() string {
	switch r.Kind {
	case KindFoundation, KindTableau:
		return r.Kind.String() + "-" + strconv.Itoa(r.Index)
	default:
		return r.Kind.String()
	}
}

// ParsePileRef resolves a pile name such as "waste", "foundation-2" or
// the short forms "w", "f2", "t6".
func ParsePileRef(s string) (PileRef, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "stock", "s":
		return StockPile(), nil
	case "waste", "w":
		return WastePile(), nil
	}

	var kind PileKind
	var rest string
	switch {
	case strings.HasPrefix(name, "foundation-"):
		kind, rest = KindFoundation, strings.TrimPrefix(name, "foundation-")
	case strings.HasPrefix(name, "tableau-"):
		kind, rest = KindTableau, strings.TrimPrefix(name, "tableau-")
	case strings.HasPrefix(name, "f"):
		kind, rest = KindFoundation, name[1:]
	case strings.HasPrefix(name, "t"):
		kind, rest = KindTableau, name[1:]
	default:
		return PileRef{}, fmt.Errorf("%w: %q", ErrUnknownPile, s)
	}

	i, err := strconv.Atoi(rest)
	if err != nil {
		return PileRef{}, fmt.Errorf("%w: %q", ErrUnknownPile, s)
	}
	ref := PileRef{Kind: kind, Index: i}
	if !ref.Valid() {
		return PileRef{}, fmt.Errorf("%w: %q", ErrUnknownPile, s)
	}
	return ref, nil
}

// CardRef addresses a card by pile and position, 0 being the bottom card.
// A move starting at a CardRef carries every card from Index to the top.
type CardRef struct {
	Pile  PileRef
	Index int
}

// Pile is an ordered run of cards; the last element is the top.
type Pile []Card

// Top returns the top card, if any.
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}
	return p[len(p)-1], true
}

func (p Pile) clone() Pile {
	out := make(Pile, len(p))
	copy(out, p)
	return out
}

// Piles holds every card on the table.
type Piles struct {
	Stock       Pile
	Waste       Pile
	Foundations [NumFoundations]Pile
	Tableau     [NumTableau]Pile
}

// Clone returns a deep copy of p.
func (p Piles) Clone() Piles {
	out := Piles{
		Stock: p.Stock.clone(),
		Waste: p.Waste.clone(),
	}
	for i := range p.Foundations {
		out.Foundations[i] = p.Foundations[i].clone()
	}
	for i := range p.Tableau {
		out.Tableau[i] = p.Tableau[i].clone()
	}
	return out
}

// Pile returns a pointer to the pile named by ref, or nil if ref is invalid.
func (p *Piles) Pile(ref PileRef) *Pile {
	if !ref.Valid() {
		return nil
	}
	switch ref.Kind {
	case KindStock:
		return &p.Stock
	case KindWaste:
		return &p.Waste
	case KindFoundation:
		return &p.Foundations[ref.Index]
	case KindTableau:
		return &p.Tableau[ref.Index]
	}
	return nil
}

// FoundationCount is the number of cards on all four foundations.
func (p Piles) FoundationCount() int {
	n := 0
	for _, f := range p.Foundations {
		n += len(f)
	}
	return n
}

// CardCount is the number of cards on the table.
func (p Piles) CardCount() int {
	n := len(p.Stock) + len(p.Waste) + p.FoundationCount()
	for _, t := range p.Tableau {
		n += len(t)
	}
	return n
}

// Verify checks the structural invariants of a layout: every card of the
// deck appears exactly once, foundations run A upward in one suit, stock is
// face-down, waste is face-up, and face-up tableau runs alternate color
// while descending by one.
func (p Piles) Verify() error {
	seen := make(map[Card]string, DeckSize)
	record := func(where string, pile Pile) error {
		for _, c := range pile {
			id := Card{Suit: c.Suit, Rank: c.Rank}
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("card %s in both %s and %s", c, prev, where)
			}
			seen[id] = where
		}
		return nil
	}

	if err := record("stock", p.Stock); err != nil {
		return err
	}
	if err := record("waste", p.Waste); err != nil {
		return err
	}
	for i, f := range p.Foundations {
		if err := record(FoundationPile(i).String(), f); err != nil {
			return err
		}
	}
	for i, t := range p.Tableau {
		if err := record(TableauPile(i).String(), t); err != nil {
			return err
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("table holds %d distinct cards, want %d", len(seen), DeckSize)
	}

	for _, c := range p.Stock {
		if c.FaceUp {
			return fmt.Errorf("stock card %s is face-up", c)
		}
	}
	for _, c := range p.Waste {
		if !c.FaceUp {
			return fmt.Errorf("waste card %s is face-down", c)
		}
	}

	for i, f := range p.Foundations {
		for j, c := range f {
			if c.Rank != Rank(j+1) || c.Suit != f[0].Suit {
				return fmt.Errorf("%s: %s out of sequence at %d", FoundationPile(i), c, j)
			}
		}
	}

	for i, t := range p.Tableau {
		if top, ok := t.Top(); ok && !top.FaceUp {
			return fmt.Errorf("%s: top card %s is face-down", TableauPile(i), top)
		}
		for j := 1; j < len(t); j++ {
			below, above := t[j-1], t[j]
			if !below.FaceUp {
				continue
			}
			if !above.FaceUp {
				return fmt.Errorf("%s: face-down %s above face-up %s", TableauPile(i), above, below)
			}
			if above.Color() == below.Color() || above.Rank != below.Rank-1 {
				return fmt.Errorf("%s: %s cannot sit on %s", TableauPile(i), above, below)
			}
		}
	}
	return nil
}
