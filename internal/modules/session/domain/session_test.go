package domain_test

import (
	"testing"

	"github.com/SdReum/classmood-cli/internal/modules/session/domain"
)

func TestClassifyPage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want domain.PageKind
	}{
		{"/", domain.PagePublic},
		{"", domain.PagePublic},
		{"/auth", domain.PagePublic},
		{"/auth/", domain.PagePublic},
		{"/auth/reset", domain.PagePublic},
		{"/upload", domain.PagePrivate},
		{"upload", domain.PagePrivate},
		{"/profile", domain.PagePrivate},
		{"/algorithm", domain.PagePrivate},
		{"/algorithm/details", domain.PagePrivate},
		{"/uploads", domain.PageUnknown},
		{"/authx", domain.PageUnknown},
		{"/about", domain.PageUnknown},
	}
	for _, tc := range cases {
		if got := domain.ClassifyPage(tc.path); got.Kind != tc.want {
			t.Errorf("ClassifyPage(%q).Kind = %v, want %v", tc.path, got.Kind, tc.want)
		}
	}
}

func TestDecideUnknownPagesAreLeftAlone(t *testing.T) {
	t.Parallel()

	for _, hasToken := range []bool{false, true} {
		for _, valid := range []bool{false, true} {
			decision := domain.Decide(domain.PageUnknown, hasToken, valid)
			if decision.State != domain.StateNone {
				t.Errorf("Decide(unknown, %v, %v).State = %v, want StateNone", hasToken, valid, decision.State)
			}
		}
	}
}

func TestDecidePublicPages(t *testing.T) {
	t.Parallel()

	if d := domain.Decide(domain.PagePublic, false, false); d.State != domain.StateShowAuthForms {
		t.Fatalf("no token on public page: %v, want StateShowAuthForms", d.State)
	}
	if d := domain.Decide(domain.PagePublic, true, false); d.State != domain.StateShowAuthForms {
		t.Fatalf("invalid token on public page: %v, want StateShowAuthForms", d.State)
	}
	d := domain.Decide(domain.PagePublic, true, true)
	if d.State != domain.StateRedirecting || d.Target.Path != domain.PathUpload {
		t.Fatalf("valid token on public page: %+v, want redirect to %s", d, domain.PathUpload)
	}
}

func TestDecidePrivatePages(t *testing.T) {
	t.Parallel()

	d := domain.Decide(domain.PagePrivate, false, false)
	if d.State != domain.StateRedirecting || d.Target.Path != domain.PathAuth {
		t.Fatalf("no token on private page: %+v, want redirect to %s", d, domain.PathAuth)
	}
	d = domain.Decide(domain.PagePrivate, true, false)
	if d.State != domain.StateRedirecting || d.Target.Path != domain.PathAuth {
		t.Fatalf("invalid token on private page: %+v, want redirect to %s", d, domain.PathAuth)
	}
	if d := domain.Decide(domain.PagePrivate, true, true); d.State != domain.StateShowPrivateContent {
		t.Fatalf("valid token on private page: %v, want StateShowPrivateContent", d.State)
	}
}
