// Package bench times member registry operations.
package bench

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultUsers is the number of members added per run.
const DefaultUsers = 1000

// Target is the set of member operations a benchmark drives.
type Target interface {
	AddUser(ctx context.Context, id, bio string) bool
	UpdateUser(ctx context.Context, id, bio string) bool
	RemoveUser(ctx context.Context, id string) bool
}

// Result holds the wall-clock duration of each phase.
type Result struct {
	Users  int
	Add    time.Duration
	Update time.Duration
	Remove time.Duration
}

// Run adds users user0..user{n-1}, then updates and removes the middle one.
func Run(ctx context.Context, t Target, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("user count must be positive, got %d", n)
	}
	res := Result{Users: n}

	start := time.Now()
	for i := range n {
		t.AddUser(ctx, "user"+strconv.Itoa(i), "details"+strconv.Itoa(i))
	}
	res.Add = time.Since(start)

	target := "user" + strconv.Itoa(n/2)

	start = time.Now()
	t.UpdateUser(ctx, target, "new details")
	res.Update = time.Since(start)

	start = time.Now()
	t.RemoveUser(ctx, target)
	res.Remove = time.Since(start)

	return res, nil
}

func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Time to add %d users: %s\n", r.Users, r.Add)
	fmt.Fprintf(&sb, "Time to update a user: %s\n", r.Update)
	fmt.Fprintf(&sb, "Time to remove a user: %s", r.Remove)
	return sb.String()
}
