package haveup

import (
	"context"
	"strings"
)

// LinkSink collects the download URLs published during a run and forwards
// the full list to a side channel after each addition.
type LinkSink struct {
	links   []string
	channel SideChannel
}

// NewLinkSink returns a LinkSink forwarding to channel. A nil channel
// disables forwarding.
func NewLinkSink(channel SideChannel) *LinkSink {
	return &LinkSink{channel: channel}
}

// Record appends url and flushes the whole list.
func (s *LinkSink) Record(ctx context.Context, url string) {
	s.links = append(s.links, url)
	s.Flush(ctx)
}

// Flush sends every link recorded so far, newline separated.
func (s *LinkSink) Flush(ctx context.Context) {
	if s.channel == nil || len(s.links) == 0 {
		return
	}
	s.channel.Publish(ctx, strings.Join(s.links, "\n"))
}

// Links returns a copy of the recorded links in order.
func (s *LinkSink) Links() []string {
	return append([]string(nil), s.links...)
}
