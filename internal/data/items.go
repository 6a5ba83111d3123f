package data

import "github.com/udisondev/beastclash/internal/model"

// ItemKind groups usable items by what they do in battle.
type ItemKind string

const (
	ItemHeal    ItemKind = "heal"    // restores HP
	ItemUses    ItemKind = "uses"    // restores technique uses
	ItemCapsule ItemKind = "capsule" // capture attempt
	ItemCure    ItemKind = "cure"    // removes ailments
)

// Item is a consumable usable from the bag during a battle.
//
// Amount is HP for heal items and uses per technique for uses items
// (0 restores to max). CatchRate is the capsule's base capture percent.
type Item struct {
	ID        model.ItemID      `yaml:"id"`
	Name      string            `yaml:"name"`
	Kind      ItemKind          `yaml:"kind"`
	Amount    int               `yaml:"amount,omitempty"`
	CatchRate int               `yaml:"catch_rate,omitempty"`
	Cures     []model.AilmentID `yaml:"cures,omitempty"`
}

var itemDefs = []Item{
	{ID: "potion", Name: "Potion", Kind: ItemHeal, Amount: 20},
	{ID: "super_potion", Name: "Super Potion", Kind: ItemHeal, Amount: 60},
	{ID: "ether", Name: "Ether", Kind: ItemUses, Amount: 10},
	{ID: "max_ether", Name: "Max Ether", Kind: ItemUses},
	{ID: "capsule", Name: "Capsule", Kind: ItemCapsule, CatchRate: 40},
	{ID: "great_capsule", Name: "Great Capsule", Kind: ItemCapsule, CatchRate: 60},
	{ID: "master_capsule", Name: "Master Capsule", Kind: ItemCapsule, CatchRate: 255},
	{ID: "antidote", Name: "Antidote", Kind: ItemCure, Cures: []model.AilmentID{Poison}},
	{ID: "awakening", Name: "Awakening", Kind: ItemCure, Cures: []model.AilmentID{Sleep}},
	{ID: "full_heal", Name: "Full Heal", Kind: ItemCure,
		Cures: []model.AilmentID{Poison, Burn, Frostbite, Sleep, Paralysis, Freeze, Fear}},
}
