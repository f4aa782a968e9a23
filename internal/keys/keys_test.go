package keys

import "testing"

func TestIdentifier(t *testing.T) {
	cases := map[string]string{
		"  Quick Strike ":  "quick-strike",
		"THUNDER_WAVE":     "thunder-wave",
		"ember":            "ember",
		"tall   grass--01": "tall-grass-01",
	}
	for in, want := range cases {
		if got := Identifier(in); got != want {
			t.Fatalf("Identifier(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("quick-strike"); got != "Quick Strike" {
		t.Fatalf("expected Quick Strike, got %q", got)
	}
}

func TestWildEncounterKey(t *testing.T) {
	if got := WildEncounterKey("abc", "Tall Grass"); got != "wild:abc:tall-grass" {
		t.Fatalf("unexpected key %q", got)
	}
}
