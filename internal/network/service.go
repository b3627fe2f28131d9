// Package network composes the member registry, connection graph, interest
// index, activity feed and mailboxes into a single service.
//
// The stores are independent and share only the identity key space: any
// operation accepts identities that were never registered. Every mutation
// is published on the event bus, and every call runs inside a trace span.
package network

import (
	"context"
	"iter"
	"strconv"

	"github.com/felixgeelhaar/toxicmates/internal/config"
	"github.com/felixgeelhaar/toxicmates/internal/events"
	"github.com/felixgeelhaar/toxicmates/internal/feed"
	"github.com/felixgeelhaar/toxicmates/internal/graph"
	"github.com/felixgeelhaar/toxicmates/internal/interest"
	"github.com/felixgeelhaar/toxicmates/internal/mailbox"
	"github.com/felixgeelhaar/toxicmates/internal/member"
	"github.com/felixgeelhaar/toxicmates/internal/observe"
)

// Service is the entry point used by the console, scenario runner and
// benchmark.
type Service struct {
	members     *member.Registry
	graph       *graph.Graph
	interests   *interest.Index
	recommender *interest.Recommender
	feed        *feed.Feed
	mail        *mailbox.Store
	bus         *events.Bus
	observe     *observe.Observer
}

// Stats summarizes the size of each store.
type Stats struct {
	Members         int
	Connections     int
	TaggedMembers   int
	FeedEntries     int
	FeedCapacity    int
	PendingMessages int
}

// New builds an empty network. A nil bus gets a private one.
func New(cfg config.Config, o *observe.Observer, bus *events.Bus) *Service {
	if bus == nil {
		bus = events.NewBus()
	}
	idx := interest.NewIndex()
	s := &Service{
		members:     member.NewRegistry(),
		graph:       graph.New(),
		interests:   idx,
		recommender: interest.NewRecommender(idx),
		feed:        feed.New(cfg.FeedCapacity),
		mail:        mailbox.New(cfg.MailboxCapacity),
		bus:         bus,
		observe:     o,
	}
	bus.SubscribeAll(s.record)
	return s
}

func (s *Service) Bus() *events.Bus {
	return s.bus
}

// record logs and counts every published event.
func (s *Service) record(e events.Event) {
	s.observe.Metrics().CountEvent(string(e.Type))
	entry := s.observe.Log().Debug().Str("event", string(e.Type)).Str("member", e.Subject)
	for k, v := range e.Data {
		entry = entry.Str(k, v)
	}
	entry.Msg("network event")
}

// Members

// AddUser registers or overwrites a member and reports whether it was new.
func (s *Service) AddUser(ctx context.Context, id, bio string) bool {
	_, span := s.observe.StartSpan(ctx, "AddUser", id)
	defer span.End()

	created := s.members.Add(id, bio)
	s.bus.Emit(events.MemberAdded, id, "created", strconv.FormatBool(created))
	return created
}

// UpdateUser changes a member's bio. Unknown members are left alone.
func (s *Service) UpdateUser(ctx context.Context, id, bio string) bool {
	_, span := s.observe.StartSpan(ctx, "UpdateUser", id)
	defer span.End()

	if !s.members.Update(id, bio) {
		return false
	}
	s.bus.Emit(events.MemberUpdated, id)
	return true
}

// RemoveUser deletes a member profile. Connections, interests and mail
// addressed to the identity are kept.
func (s *Service) RemoveUser(ctx context.Context, id string) bool {
	_, span := s.observe.StartSpan(ctx, "RemoveUser", id)
	defer span.End()

	if !s.members.Remove(id) {
		return false
	}
	s.bus.Emit(events.MemberRemoved, id)
	return true
}

// Users lists members sorted by identity, optionally filtered by glob.
func (s *Service) Users(ctx context.Context, pattern string) ([]member.Member, error) {
	_, span := s.observe.StartSpan(ctx, "Users", "")
	defer span.End()
	return s.members.List(pattern)
}

func (s *Service) User(ctx context.Context, id string) (member.Member, bool) {
	return s.members.Get(id)
}

// Connections

func (s *Service) AddConnection(ctx context.Context, a, b string) bool {
	_, span := s.observe.StartSpan(ctx, "AddConnection", a)
	defer span.End()

	if a == b {
		s.observe.Log().Debug().Str("member", a).Msg("ignoring self connection")
		return false
	}
	if !s.graph.Connect(a, b) {
		return false
	}
	s.bus.Emit(events.ConnectionAdded, a, "peer", b)
	return true
}

func (s *Service) RemoveConnection(ctx context.Context, a, b string) bool {
	_, span := s.observe.StartSpan(ctx, "RemoveConnection", a)
	defer span.End()

	if !s.graph.Disconnect(a, b) {
		return false
	}
	s.bus.Emit(events.ConnectionRemoved, a, "peer", b)
	return true
}

func (s *Service) Connections(ctx context.Context, id string) []string {
	_, span := s.observe.StartSpan(ctx, "Connections", id)
	defer span.End()
	return s.graph.Neighbors(id)
}

// Interests

func (s *Service) AddInterest(ctx context.Context, id, tag string) bool {
	_, span := s.observe.StartSpan(ctx, "AddInterest", id)
	defer span.End()

	if !s.interests.Add(id, tag) {
		return false
	}
	s.bus.Emit(events.InterestAdded, id, "tag", tag)
	return true
}

func (s *Service) RemoveInterest(ctx context.Context, id, tag string) bool {
	_, span := s.observe.StartSpan(ctx, "RemoveInterest", id)
	defer span.End()

	if !s.interests.Remove(id, tag) {
		return false
	}
	s.bus.Emit(events.InterestRemoved, id, "tag", tag)
	return true
}

func (s *Service) Interests(ctx context.Context, id string) []string {
	_, span := s.observe.StartSpan(ctx, "Interests", id)
	defer span.End()
	return s.interests.List(id)
}

// FindSimilarUsers returns members sharing at least one interest with id.
func (s *Service) FindSimilarUsers(ctx context.Context, id string) []string {
	_, span := s.observe.StartSpan(ctx, "FindSimilarUsers", id)
	defer span.End()
	return s.recommender.Similar(id)
}

// Activity feed

func (s *Service) PostActivity(ctx context.Context, author, text string) feed.Entry {
	_, span := s.observe.StartSpan(ctx, "PostActivity", author)
	defer span.End()

	entry, evicted := s.feed.Post(author, text)
	if evicted {
		s.bus.Emit(events.ActivityEvicted, author)
	}
	s.bus.Emit(events.ActivityPosted, author, "id", entry.ID)
	s.observe.Metrics().SetFeedSize(s.feed.Len())
	return entry
}

// Activities returns the feed oldest first. See feed.Feed.All.
func (s *Service) Activities(ctx context.Context) iter.Seq[feed.Entry] {
	_, span := s.observe.StartSpan(ctx, "Activities", "")
	defer span.End()
	return s.feed.All()
}

// Mailboxes

func (s *Service) SendMessage(ctx context.Context, sender, receiver, text string) mailbox.Message {
	_, span := s.observe.StartSpan(ctx, "SendMessage", sender)
	defer span.End()

	msg, evicted := s.mail.Send(sender, receiver, text)
	if evicted {
		s.observe.Log().Warn().Str("receiver", receiver).Msg("mailbox full, dropped oldest message")
		s.bus.Emit(events.MessageEvicted, receiver)
	}
	s.bus.Emit(events.MessageSent, sender, "receiver", receiver, "id", msg.ID)
	s.observe.Metrics().SetPendingMessages(s.mail.Total())
	return msg
}

// ReceiveMessages drains and returns id's mailbox in send order.
func (s *Service) ReceiveMessages(ctx context.Context, id string) []mailbox.Message {
	_, span := s.observe.StartSpan(ctx, "ReceiveMessages", id)
	defer span.End()

	msgs := s.mail.Receive(id)
	if len(msgs) > 0 {
		s.bus.Emit(events.MailboxDrained, id, "count", strconv.Itoa(len(msgs)))
		s.observe.Metrics().SetPendingMessages(s.mail.Total())
	}
	return msgs
}

func (s *Service) Stats(ctx context.Context) Stats {
	return Stats{
		Members:         s.members.Len(),
		Connections:     s.graph.EdgeCount(),
		TaggedMembers:   len(s.interests.Members()),
		FeedEntries:     s.feed.Len(),
		FeedCapacity:    s.feed.Cap(),
		PendingMessages: s.mail.Total(),
	}
}

// EventCounts reports how many events of each type were published.
func (s *Service) EventCounts() (map[string]float64, error) {
	return s.observe.Metrics().EventCounts()
}
