// Package overlay turns an analysis result into display instructions for
// a board widget: arrows, square styles and an info card for the selected
// square. Nothing here draws; preferences are a plain value.
package overlay

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownToggle is returned for preference names Toggle does not know.
var ErrUnknownToggle = errors.New("unknown overlay toggle")

// Preferences selects which overlays are produced.
type Preferences struct {
	ShowAttackers    bool `json:"showAttackers"`
	ShowDefenders    bool `json:"showDefenders"`
	ShowWhiteControl bool `json:"showWhiteControl"`
	ShowBlackControl bool `json:"showBlackControl"`
	ShowMobility     bool `json:"showMobility"`
}

// Toggle names in display order.
var toggleNames = []string{"attackers", "defenders", "white", "black", "mobility"}

// ToggleNames lists the names accepted by Toggle and Parse.
func ToggleNames() []string {
	return append([]string(nil), toggleNames...)
}

func (p *Preferences) field(name string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "attackers":
		return &p.ShowAttackers, nil
	case "defenders":
		return &p.ShowDefenders, nil
	case "white":
		return &p.ShowWhiteControl, nil
	case "black":
		return &p.ShowBlackControl, nil
	case "mobility":
		return &p.ShowMobility, nil
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownToggle, name, strings.Join(toggleNames, ", "))
}

// Toggle flips the named preference.
func (p *Preferences) Toggle(name string) error {
	f, err := p.field(name)
	if err != nil {
		return err
	}
	*f = !*f
	return nil
}

// Parse enables the comma separated preference names in list, leaving
// all others off. An empty list disables everything.
func Parse(list string) (Preferences, error) {
	var p Preferences
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := p.field(name)
		if err != nil {
			return Preferences{}, err
		}
		*f = true
	}
	return p, nil
}

// String returns the enabled preference names, comma separated.
func (p Preferences) String() string {
	var on []string
	for _, name := range toggleNames {
		f, _ := p.field(name)
		if *f {
			on = append(on, name)
		}
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}
