package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func newMirror(t *testing.T) (*RedisMirror, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return NewRedisMirror(c, ""), mr
}

func storedScore(t *testing.T, mr *miniredis.Miniredis, username string) float64 {
	t.Helper()
	s, err := mr.ZScore(DefaultKey, username)
	if err != nil {
		t.Fatalf("zscore %s: %v", username, err)
	}
	return s
}

func TestRebuildReplacesWholeSet(t *testing.T) {
	m, mr := newMirror(t)
	ctx := context.Background()

	if err := m.Publish(ctx, "stale", 40); err != nil {
		t.Fatal(err)
	}
	err := m.Rebuild(ctx, []quiz.LeaderboardEntry{{Username: "ann", Score: 5}, {Username: "bob", Score: 2}})
	if err != nil {
		t.Fatal(err)
	}
	members, err := mr.ZMembers(DefaultKey)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatalf("members after rebuild: %v", members)
	}
	if _, found, _ := m.Rank(ctx, "stale"); found {
		t.Fatal("rebuild kept a member absent from the entries")
	}

	if err := m.Rebuild(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(DefaultKey) {
		t.Fatal("empty rebuild should clear the set")
	}
}

func TestPublishNeverLowersScore(t *testing.T) {
	m, mr := newMirror(t)
	ctx := context.Background()
	if err := m.Rebuild(ctx, []quiz.LeaderboardEntry{{Username: "ann", Score: 5}, {Username: "bob", Score: 2}}); err != nil {
		t.Fatal(err)
	}

	if err := m.Publish(ctx, "ann", 1); err != nil {
		t.Fatal(err)
	}
	if got := storedScore(t, mr, "ann"); got != 5 {
		t.Fatalf("lower publish changed score: got %v want 5", got)
	}
	if err := m.Publish(ctx, "bob", 9); err != nil {
		t.Fatal(err)
	}
	if got := storedScore(t, mr, "bob"); got != 9 {
		t.Fatalf("higher publish: got %v want 9", got)
	}
	if err := m.Publish(ctx, "cy", 3); err != nil {
		t.Fatal(err)
	}
	if got := storedScore(t, mr, "cy"); got != 3 {
		t.Fatalf("new member: got %v want 3", got)
	}
}

func TestRank(t *testing.T) {
	m, _ := newMirror(t)
	ctx := context.Background()
	if err := m.Rebuild(ctx, []quiz.LeaderboardEntry{{Username: "ann", Score: 5}, {Username: "bob", Score: 2}}); err != nil {
		t.Fatal(err)
	}
	if err := m.Publish(ctx, "bob", 9); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		username  string
		wantRank  int64
		wantFound bool
	}{
		{"bob", 1, true},
		{"ann", 2, true},
		{"zz", 0, false},
	}
	for _, tc := range cases {
		rank, found, err := m.Rank(ctx, tc.username)
		if err != nil {
			t.Fatalf("%s: %v", tc.username, err)
		}
		if rank != tc.wantRank || found != tc.wantFound {
			t.Errorf("%s: got rank=%d found=%v want rank=%d found=%v", tc.username, rank, found, tc.wantRank, tc.wantFound)
		}
	}
}

func TestNewRedisMirrorDefaultKey(t *testing.T) {
	if m := NewRedisMirror(nil, ""); m.key != DefaultKey {
		t.Fatalf("key: got %q", m.key)
	}
	if m := NewRedisMirror(nil, "custom"); m.key != "custom" {
		t.Fatalf("key: got %q", m.key)
	}
}

// closedAddr returns the address of a redis server that has already stopped.
func closedAddr(t *testing.T) string {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	addr := mr.Addr()
	mr.Close()
	return addr
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	c, err := Connect(ctx, mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = c.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := Connect(ctx, closedAddr(t), "", 0); err == nil {
		t.Fatal("expected connect error once redis is gone")
	}
}

func TestMirrorSurfacesConnectionErrors(t *testing.T) {
	c := redis.NewClient(&redis.Options{Addr: closedAddr(t), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer c.Close()

	m := NewRedisMirror(c, "")
	ctx := context.Background()
	if err := m.Publish(ctx, "ann", 3); err == nil {
		t.Fatal("expected publish error")
	}
	if _, _, err := m.Rank(ctx, "ann"); err == nil {
		t.Fatal("expected rank error")
	}
}
