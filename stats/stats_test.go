package stats

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
)

func TestNilClient(t *testing.T) {
	var c *Client

	assert.NotPanics(t, func() {
		c.Inc(Attributed)
		c.RegisterEvent("GuildMemberAddEvent")
		c.EventHandler(&gateway.GuildMemberAddEvent{})
	})
}

func TestDrain(t *testing.T) {
	c := &Client{
		events:   make(map[string]uint32),
		counters: make(map[string]uint32),
	}

	c.EventHandler(&gateway.GuildMemberAddEvent{})
	c.EventHandler(&gateway.GuildMemberAddEvent{})
	c.RegisterEvent("InviteCreateEvent")
	c.Inc(Attributed)

	events, counters, total := c.drain()
	assert.Equal(t, uint32(3), total)
	assert.Equal(t, uint32(2), events["GuildMemberAddEvent"])
	assert.Equal(t, uint32(1), counters[Attributed])

	_, counters, total = c.drain()
	assert.Equal(t, uint32(0), total)
	assert.Equal(t, uint32(0), counters[Attributed])
}
