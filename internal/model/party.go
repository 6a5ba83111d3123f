package model

import "errors"

// ErrUnknownSide is returned when an arena lookup uses SideNone.
var ErrUnknownSide = errors.New("unknown side")

// Bag holds item quantities carried by a side.
type Bag map[ItemID]int

// Has reports whether at least one unit of id is held.
func (b Bag) Has(id ItemID) bool {
	return b[id] > 0
}

// Take removes one unit of id. Returns false when none is held.
func (b Bag) Take(id ItemID) bool {
	if b[id] <= 0 {
		return false
	}
	b[id]--
	if b[id] == 0 {
		delete(b, id)
	}
	return true
}

// Party is the roster one side brings to a battle.
type Party struct {
	Members []*Combatant
	Active  int
	Bag     Bag
}

// NewParty creates a party with the first member active.
func NewParty(members ...*Combatant) *Party {
	return &Party{Members: members, Bag: make(Bag)}
}

// ActiveMember returns the combatant currently fighting, or nil.
func (p *Party) ActiveMember() *Combatant {
	if p == nil || p.Active < 0 || p.Active >= len(p.Members) {
		return nil
	}
	return p.Members[p.Active]
}

// NextAvailable returns the index of the first fit member other than the
// active one, or -1 when every teammate is incapacitated.
func (p *Party) NextAvailable() int {
	for i, m := range p.Members {
		if i != p.Active && !m.IsIncapacitated() {
			return i
		}
	}
	return -1
}

// AllIncapacitated reports whether no member can fight.
func (p *Party) AllIncapacitated() bool {
	for _, m := range p.Members {
		if !m.IsIncapacitated() {
			return false
		}
	}
	return true
}

// Arena holds both parties addressed by side. The engine holds exclusive
// mutation rights while a round executes.
type Arena struct {
	parties [2]*Party
}

// NewArena pairs the player's party with the opponent's.
func NewArena(player, opponent *Party) *Arena {
	return &Arena{parties: [2]*Party{player, opponent}}
}

// Party returns the roster of side.
func (a *Arena) Party(side Side) *Party {
	if !side.Valid() {
		return nil
	}
	return a.parties[side]
}

// Active returns the fighting combatant of side.
func (a *Arena) Active(side Side) *Combatant {
	return a.Party(side).ActiveMember()
}

// SideOf locates the side whose party contains the combatant id.
func (a *Arena) SideOf(id CombatantID) (Side, error) {
	for _, side := range Sides {
		for _, m := range a.parties[side].Members {
			if m.ID == id {
				return side, nil
			}
		}
	}
	return SideNone, ErrUnknownSide
}

// Each calls fn for every member of both parties.
func (a *Arena) Each(fn func(side Side, c *Combatant)) {
	for _, side := range Sides {
		for _, m := range a.parties[side].Members {
			fn(side, m)
		}
	}
}
