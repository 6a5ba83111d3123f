package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/battle"
	"github.com/udisondev/beastclash/internal/model"
)

// ErrBadScript wraps every script parse failure.
var ErrBadScript = errors.New("bad script entry")

// parseScript turns entries like "attack:ember" into intents. Names are
// checked against the catalog; a typo reports the closest known name.
func parseScript(cat *data.Catalog, entries []string) ([]battle.Intent, error) {
	out := make([]battle.Intent, 0, len(entries))
	for i, raw := range entries {
		in, err := parseEntry(cat, raw)
		if err != nil {
			return nil, fmt.Errorf("%w #%d %q: %w", ErrBadScript, i+1, raw, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func parseEntry(cat *data.Catalog, raw string) (battle.Intent, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(raw), ":")
	kind = strings.ToLower(strings.TrimSpace(kind))
	arg = strings.TrimSpace(arg)

	switch battle.IntentKind(kind) {
	case battle.IntentAttack:
		id := model.TechniqueID(arg)
		if _, ok := cat.Technique(id); !ok {
			return battle.Intent{}, unknown("technique", arg, func() (string, bool) {
				s, ok := cat.SuggestTechnique(arg)
				return string(s), ok
			})
		}
		return battle.Attack(id), nil

	case battle.IntentItem, battle.IntentCapture:
		id := model.ItemID(arg)
		if _, ok := cat.Item(id); !ok {
			return battle.Intent{}, unknown("item", arg, func() (string, bool) {
				s, ok := cat.SuggestItem(arg)
				return string(s), ok
			})
		}
		if kind == string(battle.IntentCapture) {
			return battle.Capture(id), nil
		}
		return battle.UseItem(id), nil

	case battle.IntentSwap:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return battle.Intent{}, fmt.Errorf("swap needs a party index, got %q", arg)
		}
		return battle.Swap(n), nil

	case battle.IntentFlee:
		if arg != "" {
			return battle.Intent{}, fmt.Errorf("flee takes no argument, got %q", arg)
		}
		return battle.Flee(), nil
	}
	return battle.Intent{}, fmt.Errorf("unknown intent %q", kind)
}

func unknown(what, name string, suggest func() (string, bool)) error {
	if s, ok := suggest(); ok {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", what, name, s)
	}
	return fmt.Errorf("unknown %s %q", what, name)
}
