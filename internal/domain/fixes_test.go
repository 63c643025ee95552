package domain

import "testing"

func TestMatchFixFirstEntryWins(t *testing.T) {
	issue := "The electronic health record system is experiencing intermittent outages. " +
		"Also the hospital intranet is slow, affecting access to patient records."

	tmpl, ok := MatchFix(issue)
	if !ok {
		t.Fatal("expected a match")
	}
	if tmpl.Key != "restart_ehr" {
		t.Fatalf("expected the earlier catalog entry to win, got %q", tmpl.Key)
	}
}

func TestMatchFixNoMatch(t *testing.T) {
	if _, ok := MatchFix("My chair squeaks."); ok {
		t.Fatal("expected no match")
	}
}

func TestFixByKey(t *testing.T) {
	tmpl, ok := FixByKey("restart_vpn")
	if !ok {
		t.Fatal("expected restart_vpn in the catalog")
	}
	if tmpl.Fix == "" {
		t.Fatal("catalog entry has no fix text")
	}
	if _, ok := FixByKey("nope"); ok {
		t.Fatal("unexpected match for unknown key")
	}
}

func TestPriorityDescriptions(t *testing.T) {
	cases := map[int]string{
		PriorityLowest:  "Level 1 (Lowest)",
		PriorityMedium:  "Level 2 (Medium)",
		PriorityHighest: "Level 3 (Highest)",
	}
	for level, want := range cases {
		if got := PriorityDescription(level); got != want {
			t.Fatalf("level %d: expected %q, got %q", level, want, got)
		}
	}
	if ValidPriorityLevel(0) || ValidPriorityLevel(4) {
		t.Fatal("levels outside 1..3 must be invalid")
	}
}
