package domain_test

import (
	"slices"
	"testing"

	"heartcare/internal/domain"
)

func TestToggleSymptom(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		tap      string
		want     []string
	}{
		{"first symptom replaces sentinel", []string{"无症状"}, "胸闷", []string{"胸闷"}},
		{"adds second symptom", []string{"胸闷"}, "水肿", []string{"胸闷", "水肿"}},
		{"untoggles symptom", []string{"胸闷", "水肿"}, "胸闷", []string{"水肿"}},
		{"last symptom falls back to sentinel", []string{"胸闷"}, "胸闷", []string{"无症状"}},
		{"sentinel clears everything", []string{"胸闷", "水肿"}, "无症状", []string{"无症状"}},
		{"sentinel on sentinel", []string{"无症状"}, "无症状", []string{"无症状"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ToggleSymptom(tc.selected, tc.tap)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("ToggleSymptom(%v, %q) = %v; want %v", tc.selected, tc.tap, got, tc.want)
			}
		})
	}
}

func TestKnownSymptom(t *testing.T) {
	if !domain.KnownSymptom("其他") || domain.KnownSymptom("头痛") {
		t.Fatal("KnownSymptom disagrees with the checklist")
	}
}
