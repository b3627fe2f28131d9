package network

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/toxicmates/internal/config"
	"github.com/felixgeelhaar/toxicmates/internal/events"
	"github.com/felixgeelhaar/toxicmates/internal/feed"
	"github.com/felixgeelhaar/toxicmates/internal/observe"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(config.Default(), observe.Discard(), nil)
}

func TestService_AddUserTwiceOverwrites(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	assert.True(t, s.AddUser(ctx, "alice", "first"))
	assert.False(t, s.AddUser(ctx, "alice", "second"))

	users, err := s.Users(ctx, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "second", users[0].Bio)
}

func TestService_UnknownIdentitiesAreNoOps(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	assert.False(t, s.UpdateUser(ctx, "ghost", "bio"))
	assert.False(t, s.RemoveUser(ctx, "ghost"))
	assert.False(t, s.RemoveConnection(ctx, "ghost", "phantom"))
	assert.False(t, s.RemoveInterest(ctx, "ghost", "chess"))
	assert.Empty(t, s.Connections(ctx, "ghost"))
	assert.Empty(t, s.Interests(ctx, "ghost"))
	assert.Empty(t, s.ReceiveMessages(ctx, "ghost"))
	assert.Empty(t, s.FindSimilarUsers(ctx, "ghost"))
}

func TestService_StoresDoNotRequireRegistration(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	s.AddConnection(ctx, "alice", "bob")
	s.AddInterest(ctx, "alice", "art")
	s.SendMessage(ctx, "bob", "alice", "hi")

	assert.Equal(t, []string{"bob"}, s.Connections(ctx, "alice"))
	assert.Equal(t, 0, s.Stats(ctx).Members)

	t.Run("removing a member keeps its other data", func(t *testing.T) {
		s.AddUser(ctx, "alice", "")
		s.RemoveUser(ctx, "alice")
		assert.Equal(t, []string{"bob"}, s.Connections(ctx, "alice"))
		assert.Equal(t, []string{"art"}, s.Interests(ctx, "alice"))
		assert.Len(t, s.ReceiveMessages(ctx, "alice"), 1)
	})
}

func TestService_ConnectionSymmetry(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	assert.True(t, s.AddConnection(ctx, "a", "b"))
	assert.Contains(t, s.Connections(ctx, "a"), "b")
	assert.Contains(t, s.Connections(ctx, "b"), "a")

	assert.True(t, s.RemoveConnection(ctx, "a", "b"))
	assert.NotContains(t, s.Connections(ctx, "a"), "b")
	assert.NotContains(t, s.Connections(ctx, "b"), "a")

	assert.False(t, s.AddConnection(ctx, "a", "a"))
	assert.Empty(t, s.Connections(ctx, "a"))
}

func TestService_Recommendations(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	s.AddInterest(ctx, "A", "chess")
	s.AddInterest(ctx, "A", "art")
	s.AddInterest(ctx, "B", "art")
	s.AddInterest(ctx, "B", "music")
	s.AddInterest(ctx, "C", "golf")

	got := s.FindSimilarUsers(ctx, "A")
	assert.Contains(t, got, "B")
	assert.NotContains(t, got, "C")

	s.RemoveInterest(ctx, "A", "art")
	assert.NotContains(t, s.Interests(ctx, "A"), "art")
	assert.Empty(t, s.FindSimilarUsers(ctx, "A"), "removed tags no longer drive recommendations")
}

func TestService_FeedBound(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	for i := 1; i <= 1001; i++ {
		s.PostActivity(ctx, "u", fmt.Sprintf("post-%d", i))
	}

	entries := slices.Collect(s.Activities(ctx))
	require.Len(t, entries, 1000)
	assert.Equal(t, "post-2", entries[0].Text)
	assert.Equal(t, "post-1001", entries[999].Text)
}

func TestService_MailboxDrain(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	for i := range 4 {
		s.SendMessage(ctx, "alice", "bob", fmt.Sprint(i))
	}
	got := s.ReceiveMessages(ctx, "bob")
	require.Len(t, got, 4)
	for i, m := range got {
		assert.Equal(t, fmt.Sprint(i), m.Text)
	}
	assert.Empty(t, s.ReceiveMessages(ctx, "bob"))
}

func TestService_PublishesEvents(t *testing.T) {
	bus := events.NewBus()
	s := New(config.Default(), observe.Discard(), bus)
	ctx := context.Background()

	var seen []events.Type
	bus.SubscribeAll(func(e events.Event) { seen = append(seen, e.Type) })

	s.AddUser(ctx, "alice", "")
	s.AddConnection(ctx, "alice", "bob")
	s.AddConnection(ctx, "alice", "bob")
	s.AddInterest(ctx, "alice", "art")
	s.PostActivity(ctx, "alice", "hello")
	s.SendMessage(ctx, "alice", "bob", "hi")
	s.ReceiveMessages(ctx, "bob")
	s.ReceiveMessages(ctx, "bob")

	assert.Equal(t, []events.Type{
		events.MemberAdded,
		events.ConnectionAdded,
		events.InterestAdded,
		events.ActivityPosted,
		events.MessageSent,
		events.MailboxDrained,
	}, seen)
}

func TestService_EvictionEvents(t *testing.T) {
	cfg := config.Default()
	cfg.FeedCapacity = 1
	cfg.MailboxCapacity = 1
	s := New(cfg, observe.Discard(), nil)
	ctx := context.Background()

	s.PostActivity(ctx, "a", "1")
	s.PostActivity(ctx, "a", "2")
	s.SendMessage(ctx, "a", "b", "1")
	s.SendMessage(ctx, "a", "b", "2")

	counts, err := s.observe.Metrics().EventCounts()
	require.NoError(t, err)
	assert.Equal(t, 1.0, counts[string(events.ActivityEvicted)])
	assert.Equal(t, 1.0, counts[string(events.MessageEvicted)])
	assert.Equal(t, 2.0, counts[string(events.ActivityPosted)])
}

func TestService_LogsEventsWhenVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(config.Default(), observe.New(buf, true), nil)

	s.AddInterest(context.Background(), "alice", "chess")

	out := buf.String()
	assert.True(t, strings.Contains(out, "network event"), "got %q", out)
}

func TestService_Stats(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	s.AddUser(ctx, "a", "")
	s.AddUser(ctx, "b", "")
	s.AddConnection(ctx, "a", "b")
	s.AddInterest(ctx, "a", "go")
	s.PostActivity(ctx, "a", "x")
	s.SendMessage(ctx, "a", "b", "y")

	assert.Equal(t, Stats{
		Members:         2,
		Connections:     1,
		TaggedMembers:   1,
		FeedEntries:     1,
		FeedCapacity:    feed.DefaultCapacity,
		PendingMessages: 1,
	}, s.Stats(ctx))
}

func TestService_ConcurrentCallers(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	var eg errgroup.Group

	for i := range 20 {
		eg.Go(func() error {
			id := fmt.Sprintf("user%d", i)
			s.AddUser(ctx, id, "bio")
			s.AddInterest(ctx, id, "go")
			s.AddConnection(ctx, id, "hub")
			s.PostActivity(ctx, id, "joined")
			s.SendMessage(ctx, id, "hub", "hello")
			s.FindSimilarUsers(ctx, id)
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	st := s.Stats(ctx)
	assert.Equal(t, 20, st.Members)
	assert.Equal(t, 20, st.Connections)
	assert.Len(t, s.FindSimilarUsers(ctx, "user0"), 19)
	assert.Len(t, s.ReceiveMessages(ctx, "hub"), 20)
}
