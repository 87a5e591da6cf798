package core

import (
	"errors"
	"testing"

	"github.com/example/amabot/internal/types"
)

func testUsers() []types.User {
	return []types.User{
		{ID: 100, Name: "Alice"},
		{ID: 200, Name: "Bob"},
		{ID: 300, Name: "bobby tables"},
	}
}

func TestResolveTarget_Numeric(t *testing.T) {
	res, err := ResolveTarget(testUsers(), "1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if res.Index != 1 || res.User.ID != 200 {
		t.Errorf("expected index 1 user 200, got index %d user %d", res.Index, res.User.ID)
	}
	if res.ByName {
		t.Error("numeric resolution should not be ByName")
	}
}

func TestResolveTarget_NumericOutOfRange(t *testing.T) {
	for _, sel := range []string{"-1", "3", "99"} {
		_, err := ResolveTarget(testUsers(), sel)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Fatalf("selector %q: expected RangeError, got %v", sel, err)
		}
		if re.Max != 3 {
			t.Errorf("selector %q: expected max 3, got %d", sel, re.Max)
		}
	}
}

func TestResolveTarget_NameFirstMatchWins(t *testing.T) {
	res, err := ResolveTarget(testUsers(), "bob")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if res.Index != 1 {
		t.Errorf("expected first match at index 1, got %d", res.Index)
	}
	if !res.ByName {
		t.Error("expected ByName resolution")
	}
}

func TestResolveTarget_NameCaseInsensitive(t *testing.T) {
	res, err := ResolveTarget(testUsers(), "ALICE")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if res.User.ID != 100 {
		t.Errorf("expected user 100, got %d", res.User.ID)
	}
}

func TestResolveTarget_NoMatch(t *testing.T) {
	_, err := ResolveTarget(testUsers(), "carol")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestResolveTarget_EmptyList(t *testing.T) {
	_, err := ResolveTarget(nil, "0")
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	users := testUsers()
	if got := IndexOf(users, 300); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := IndexOf(users, 999); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}

func TestSortUsers(t *testing.T) {
	users := []types.User{
		{ID: 1, Name: "zed"},
		{ID: 2, Name: "Alice"},
		{ID: 3, Name: "bob"},
		{ID: 4, Name: "Bob"},
	}
	SortUsers(users)

	names := []string{users[0].Name, users[1].Name, users[2].Name, users[3].Name}
	want := []string{"Alice", "bob", "Bob", "zed"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

func TestDeriveName(t *testing.T) {
	cases := []struct {
		name string
		id   Identity
		want string
	}{
		{"username only", Identity{Username: "alice"}, "alice"},
		{"username with both names", Identity{Username: "alice", FirstName: "Alice", LastName: "Smith"}, "alice (Alice Smith)"},
		{"username with first only", Identity{Username: "alice", FirstName: "Alice"}, "alice (Alice)"},
		{"first and last", Identity{FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"first only", Identity{FirstName: "Alice"}, "Alice"},
		{"nothing", Identity{}, ""},
	}

	for _, tc := range cases {
		if got := DeriveName(tc.id); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
