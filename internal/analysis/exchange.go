package analysis

import "slices"

// ExchangeValue estimates the material outcome of trading off every
// attacker and defender on a square holding a piece worth target.
//
// Both sides capture cheapest first. Each attacker ply spends an attacker
// while a defender remains at that depth, and each defender ply wins back a
// defender's value while an attacker remains. The sequence always runs to
// the end; neither side stops early when a capture would lose material.
func ExchangeValue(target int, attackers, defenders []int) int {
	a := slices.Clone(attackers)
	slices.Sort(a)
	d := slices.Clone(defenders)
	slices.Sort(d)

	captured, lost := target, 0
	for ply := 0; ply < 2*max(len(a), len(d)); ply++ {
		i := ply / 2
		if i >= len(a) || i >= len(d) {
			continue
		}
		if ply%2 == 0 {
			lost += a[i]
		} else {
			captured += d[i]
		}
	}
	return captured - lost
}
