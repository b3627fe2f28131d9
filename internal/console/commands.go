package console

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/toxicmates/internal/bench"
	"github.com/felixgeelhaar/toxicmates/internal/events"
)

const (
	farewell      = "Thank you for browsing and spending your time in TOXIC Mates! See you!"
	invalidChoice = "Invalid choice. Please try again."
)

func commandTable() []*Command {
	return []*Command{
		{Number: 1, Name: "add-user", Args: []string{"username"}, Text: "bio", Summary: "Add User", run: addUser},
		{Number: 2, Name: "remove-user", Args: []string{"username"}, Summary: "Remove User", run: removeUser},
		{Number: 3, Name: "update-user", Args: []string{"username"}, Text: "bio", Summary: "Update User", run: updateUser},
		{Number: 4, Name: "users", Optional: "pattern", Summary: "Display Users", run: listUsers},
		{Number: 5, Name: "add-interest", Args: []string{"username", "interest"}, Summary: "Add Interest", run: addInterest},
		{Number: 6, Name: "remove-interest", Args: []string{"username", "interest"}, Summary: "Remove Interest", run: removeInterest},
		{Number: 7, Name: "interests", Args: []string{"username"}, Summary: "List Interests", run: listInterests},
		{Number: 8, Name: "connect", Args: []string{"username", "friend"}, Summary: "Add Connection", run: connect},
		{Number: 9, Name: "disconnect", Args: []string{"username", "friend"}, Summary: "Remove Connection", run: disconnect},
		{Number: 10, Name: "connections", Args: []string{"username"}, Summary: "List Connections", run: listConnections},
		{Number: 11, Name: "post", Args: []string{"username"}, Text: "content", TextRequired: true, Summary: "Post Activity", run: post},
		{Number: 12, Name: "feed", Summary: "Retrieve Activities", run: showFeed},
		{Number: 13, Name: "send", Args: []string{"sender", "receiver"}, Text: "message", TextRequired: true, Summary: "Send Message", run: send},
		{Number: 14, Name: "inbox", Args: []string{"username"}, Summary: "Receive Messages", run: inbox},
		{Number: 15, Name: "similar", Args: []string{"username"}, Summary: "Find Users with Similar Interests", run: similar},
		{Number: 16, Name: "bench", Optional: "users", Summary: "Benchmark User Management", run: runBench},
		{Number: 17, Name: "exit", Aliases: []string{"quit"}, Summary: "Exit", run: exit},
		{Name: "stats", Summary: "Show store sizes and event counts", run: stats},
		{Name: "help", Aliases: []string{"menu", "?"}, Summary: "Show this menu", run: help},
	}
}

func addUser(ctx context.Context, c *Console, in input) (string, error) {
	c.svc.AddUser(ctx, in.args[0], in.text)
	return fmt.Sprintf("Congratulations! %s is a member of TOXIC Mates.", in.args[0]), nil
}

func removeUser(ctx context.Context, c *Console, in input) (string, error) {
	if !c.svc.RemoveUser(ctx, in.args[0]) {
		return fmt.Sprintf("%s is not a member of TOXIC Mates.", in.args[0]), nil
	}
	return fmt.Sprintf("%s is no longer a member of TOXIC Mates.", in.args[0]), nil
}

func updateUser(ctx context.Context, c *Console, in input) (string, error) {
	if !c.svc.UpdateUser(ctx, in.args[0], in.text) {
		return fmt.Sprintf("%s is not a member of TOXIC Mates.", in.args[0]), nil
	}
	return "Congratulations! User info is updated!", nil
}

func listUsers(ctx context.Context, c *Console, in input) (string, error) {
	members, err := c.svc.Users(ctx, in.optional)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "TOXIC Mates has no members yet.", nil
	}
	lines := []string{"Here's the list of the members of TOXIC Mates:"}
	for _, m := range members {
		lines = append(lines, fmt.Sprintf("Username: %s\tDetails: %s", m.ID, m.Bio))
	}
	return strings.Join(lines, "\n"), nil
}

func addInterest(ctx context.Context, c *Console, in input) (string, error) {
	c.svc.AddInterest(ctx, in.args[0], in.args[1])
	return fmt.Sprintf("%s has successfully added %q to their interests.", in.args[0], in.args[1]), nil
}

func removeInterest(ctx context.Context, c *Console, in input) (string, error) {
	c.svc.RemoveInterest(ctx, in.args[0], in.args[1])
	return fmt.Sprintf("%s has successfully removed %q from their interests.", in.args[0], in.args[1]), nil
}

func listInterests(ctx context.Context, c *Console, in input) (string, error) {
	tags := c.svc.Interests(ctx, in.args[0])
	if len(tags) == 0 {
		return fmt.Sprintf("%s has no interests recorded.", in.args[0]), nil
	}
	return fmt.Sprintf("%s has interest in these fields below:\n%s", in.args[0], strings.Join(tags, ", ")), nil
}

func connect(ctx context.Context, c *Console, in input) (string, error) {
	a, b := in.args[0], in.args[1]
	if a == b {
		return fmt.Sprintf("%s cannot befriend themselves.", a), nil
	}
	c.svc.AddConnection(ctx, a, b)
	return fmt.Sprintf("%s and %s are friends now! :)", a, b), nil
}

func disconnect(ctx context.Context, c *Console, in input) (string, error) {
	a, b := in.args[0], in.args[1]
	if !c.svc.RemoveConnection(ctx, a, b) {
		return fmt.Sprintf("%s and %s were not friends.", a, b), nil
	}
	return fmt.Sprintf("%s and %s are no longer friends now! :(", a, b), nil
}

func listConnections(ctx context.Context, c *Console, in input) (string, error) {
	friends := c.svc.Connections(ctx, in.args[0])
	if len(friends) == 0 {
		return fmt.Sprintf("%s has no connections.", in.args[0]), nil
	}
	return fmt.Sprintf("%s has %s as friends.", in.args[0], strings.Join(friends, ", ")), nil
}

func post(ctx context.Context, c *Console, in input) (string, error) {
	c.svc.PostActivity(ctx, in.args[0], in.text)
	return fmt.Sprintf("%s has successfully posted.", in.args[0]), nil
}

func showFeed(ctx context.Context, c *Console, _ input) (string, error) {
	var lines []string
	for e := range c.svc.Activities(ctx) {
		lines = append(lines, e.Author+": "+e.Text)
	}
	if len(lines) == 0 {
		return "The feed is empty.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func send(ctx context.Context, c *Console, in input) (string, error) {
	c.svc.SendMessage(ctx, in.args[0], in.args[1], in.text)
	return "Message Sent Successfully!", nil
}

func inbox(ctx context.Context, c *Console, in input) (string, error) {
	msgs := c.svc.ReceiveMessages(ctx, in.args[0])
	if len(msgs) == 0 {
		return fmt.Sprintf("%s has no new messages.", in.args[0]), nil
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("%s to %s: %s", m.Sender, m.Receiver, m.Text))
	}
	return strings.Join(lines, "\n"), nil
}

func similar(ctx context.Context, c *Console, in input) (string, error) {
	users := c.svc.FindSimilarUsers(ctx, in.args[0])
	if len(users) == 0 {
		return "No similarities found.", nil
	}
	return strings.Join(users, "\n"), nil
}

func runBench(ctx context.Context, c *Console, in input) (string, error) {
	n := bench.DefaultUsers
	if in.optional != "" {
		v, err := strconv.Atoi(in.optional)
		if err != nil {
			return "", fmt.Errorf("%w: bench [users]: %q is not a number", ErrUsage, in.optional)
		}
		n = v
	}
	res, err := bench.Run(ctx, c.scratch(), n)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func stats(ctx context.Context, c *Console, _ input) (string, error) {
	st := c.svc.Stats(ctx)
	counts, err := c.svc.EventCounts()
	if err != nil {
		return "", fmt.Errorf("failed to read event counts: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Members:          %d\n", st.Members)
	fmt.Fprintf(&sb, "Connections:      %d\n", st.Connections)
	fmt.Fprintf(&sb, "Members w/ tags:  %d\n", st.TaggedMembers)
	fmt.Fprintf(&sb, "Feed:             %d/%d\n", st.FeedEntries, st.FeedCapacity)
	fmt.Fprintf(&sb, "Pending messages: %d", st.PendingMessages)

	types := make([]string, 0, len(events.Types))
	for _, t := range events.Types {
		if counts[string(t)] > 0 {
			types = append(types, string(t))
		}
	}
	slices.Sort(types)
	if len(types) > 0 {
		sb.WriteString("\nEvents:")
		for _, t := range types {
			fmt.Fprintf(&sb, "\n  %-18s %d", t, int(counts[t]))
		}
	}
	return sb.String(), nil
}

func help(_ context.Context, c *Console, _ input) (string, error) {
	return c.Menu(), nil
}

func exit(context.Context, *Console, input) (string, error) {
	return farewell, ErrExit
}
