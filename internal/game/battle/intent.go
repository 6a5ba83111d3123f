package battle

import (
	"strconv"

	"github.com/udisondev/beastclash/internal/model"
)

// IntentKind names what the player wants to do this round.
type IntentKind string

const (
	IntentAttack  IntentKind = "attack"
	IntentItem    IntentKind = "item"
	IntentSwap    IntentKind = "swap"
	IntentFlee    IntentKind = "flee"
	IntentCapture IntentKind = "capture"
)

// Intent is the single action staged for a round. Only the field matching
// Kind is read.
type Intent struct {
	Kind      IntentKind        `json:"kind"`
	Technique model.TechniqueID `json:"technique,omitempty"`
	Item      model.ItemID      `json:"item,omitempty"`
	Index     int               `json:"index,omitempty"`
}

func Attack(id model.TechniqueID) Intent { return Intent{Kind: IntentAttack, Technique: id} }
func UseItem(id model.ItemID) Intent     { return Intent{Kind: IntentItem, Item: id} }
func Swap(index int) Intent              { return Intent{Kind: IntentSwap, Index: index} }
func Flee() Intent                       { return Intent{Kind: IntentFlee} }
func Capture(id model.ItemID) Intent     { return Intent{Kind: IntentCapture, Item: id} }

// Detail is the payload of the intent as shown in the round log.
func (i Intent) Detail() string {
	switch i.Kind {
	case IntentAttack:
		return string(i.Technique)
	case IntentItem, IntentCapture:
		return string(i.Item)
	case IntentSwap:
		return strconv.Itoa(i.Index)
	default:
		return ""
	}
}
