package analysis

// classifyThreats derives the threat tags from the pin and hanging flags.
// TODO: detect forks and skewers from the attack sets.
func classifyThreats(info *PieceInfo) []Threat {
	threats := []Threat{}
	if info.IsPinned {
		threats = append(threats, ThreatPinned)
	}
	if info.IsHanging {
		threats = append(threats, ThreatHanging)
	}
	return threats
}
