package types

import (
	"testing"
)

func TestSocialLinksOrderAndORCID(t *testing.T) {
	links := SocialLinks{
		Website:       "https://jameschen.io",
		ORCID:         "0000-0001-2345-6789",
		LinkedIn:      "https://linkedin.com",
		GoogleScholar: "https://scholar.google.com",
	}

	got := links.Links()
	wantLabels := []string{"LinkedIn", "Google Scholar", "ORCID", "Website"}
	if len(got) != len(wantLabels) {
		t.Fatalf("expected %d links, got %d", len(wantLabels), len(got))
	}
	for i, label := range wantLabels {
		if got[i].Label != label {
			t.Errorf("link %d: want %s, got %s", i, label, got[i].Label)
		}
	}
	if got[2].URL != "https://orcid.org/0000-0001-2345-6789" {
		t.Fatalf("unexpected ORCID URL: %s", got[2].URL)
	}

	if (SocialLinks{}).ORCIDURL() != "" {
		t.Fatalf("expected empty ORCID URL for empty links")
	}
}

func TestUserInitials(t *testing.T) {
	cases := map[string]string{
		"Dr. Elena Foster": "EF",
		"James Chen":       "JC",
		"Sarah":            "S",
		"":                 "",
	}
	for name, want := range cases {
		if got := (User{Name: name}).Initials(); got != want {
			t.Errorf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles() {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("Dean").Valid() {
		t.Fatalf("expected unknown role to be invalid")
	}
}

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, err := ParseView(v.String())
		if err != nil || got != v {
			t.Errorf("ParseView(%q) = %v, %v", v.String(), got, err)
		}
		got, err = ParseView(v.Label())
		if err != nil || got != v {
			t.Errorf("ParseView(%q) = %v, %v", v.Label(), got, err)
		}
	}
	if _, err := ParseView("settings"); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func TestViewsNavigationOrder(t *testing.T) {
	want := []string{"Home", "Match", "Feed", "Market", "Assistant", "Profile"}
	views := Views()
	if len(views) != len(want) {
		t.Fatalf("expected %d views, got %d", len(want), len(views))
	}
	for i, v := range views {
		if v.Label() != want[i] {
			t.Errorf("position %d: want %s, got %s", i, want[i], v.Label())
		}
	}
}
