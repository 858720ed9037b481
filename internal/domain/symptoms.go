package domain

import "slices"

// Symptom checklist labels. NoSymptoms is exclusive with every other entry;
// OtherSymptom enables the free-text note.
const (
	NoSymptoms   = "无症状"
	OtherSymptom = "其他"
)

// Symptoms lists the checklist offered on the daily log, in display order.
var Symptoms = []string{NoSymptoms, "呼吸困难", "胸闷", "水肿", "咳嗽", "腹胀", "疲乏", "纳差", OtherSymptom}

// KnownSymptom reports whether s is on the checklist.
func KnownSymptom(s string) bool {
	return slices.Contains(Symptoms, s)
}

// ToggleSymptom returns the selection after the user taps s. Picking
// NoSymptoms clears everything else; picking any other symptom drops
// NoSymptoms and flips s. The result is never empty.
func ToggleSymptom(selected []string, s string) []string {
	if s == NoSymptoms {
		return []string{NoSymptoms}
	}
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, cur := range selected {
		switch cur {
		case NoSymptoms:
		case s:
			found = true
		default:
			out = append(out, cur)
		}
	}
	if !found {
		out = append(out, s)
	}
	if len(out) == 0 {
		return []string{NoSymptoms}
	}
	return out
}
