package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerHas(t *testing.T) {
	c := NewChecker(map[string][]string{
		"player": {"quiz:play"},
		"editor": {"bank:*"},
		"admin":  {"*"},
	})
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"player", "quiz:play", true},
		{"player", "bank:replace", false},
		{"editor", "bank:replace", true},
		{"editor", "quiz:play", false},
		{"editor", "bankroll", false},
		{"admin", "bank:replace", true},
		{"nobody", "quiz:play", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	if !c.Has("player", PermQuizPlay) || c.Has("player", PermBankReplace) {
		t.Fatal("player policy wrong")
	}
	if !c.Has("admin", PermBankReplace) {
		t.Fatal("admin must hold every permission")
	}
}

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Require(PermBankReplace)(ok)

	for role, want := range map[string]int{
		"":       http.StatusForbidden,
		"player": http.StatusForbidden,
		"admin":  http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %q: got %d want %d", role, rec.Code, want)
		}
	}
}
