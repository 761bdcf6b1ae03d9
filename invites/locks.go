package invites

import (
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
)

// guildLocks is a set of per-guild mutexes. Unused mutexes are removed from the map.
type guildLocks struct {
	mu    sync.Mutex
	locks map[discord.GuildID]*guildLock
}

type guildLock struct {
	sync.Mutex
	waiters int
}

// lock locks the mutex for the given guild, and returns a function to unlock it.
func (l *guildLocks) lock(id discord.GuildID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[discord.GuildID]*guildLock)
	}

	gl, ok := l.locks[id]
	if !ok {
		gl = &guildLock{}
		l.locks[id] = gl
	}
	gl.waiters++
	l.mu.Unlock()

	gl.Lock()

	return func() {
		gl.Unlock()

		l.mu.Lock()
		gl.waiters--
		if gl.waiters == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
