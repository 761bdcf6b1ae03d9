package bot

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/invites"
	"github.com/warden-bot/warden/platform"
	"github.com/warden-bot/warden/stats"
	"github.com/warden-bot/warden/store"
	"github.com/warden-bot/warden/store/memory"
	"github.com/warden-bot/warden/store/redis"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMembers |
	gateway.IntentGuildInvites |
	gateway.IntentGuildMessages |
	gateway.IntentGuildMessageReactions

var _ platform.Platform = (*Bot)(nil)

type Bot struct {
	Router *bcr.Router
	DB     *db.DB
	Config Config

	Snapshots store.SnapshotStore
	Tracker   *invites.Tracker
	Stats     *stats.Client

	Start time.Time
}

// New creates a new Bot. ctx controls the lifetime of background workers (currently only metrics).
func New(ctx context.Context, c Config) (*Bot, error) {
	// set up debug logging
	ws.WSDebug = log.Named("ws").Debug
	ws.WSError = func(err error) {
		log.SugaredLogger.Error("ws error: ", err)
	}

	r, err := bcr.NewWithIntents(c.Token, c.OwnerIDs(), c.Prefixes, Intents)
	if err != nil {
		return nil, errors.Wrap(err, "creating router")
	}
	r.EmbedColor = common.ColourPurple

	bot := &Bot{
		Router: r,
		Config: c,
		Start:  time.Now().UTC(),
	}

	bot.DB, err = db.New(c.DatabaseURL, c.NoAutoMigrate)
	if err != nil {
		return nil, errors.Wrap(err, "creating database")
	}

	if c.Redis != "" {
		bot.Snapshots, err = redis.New(c.Redis)
		if err != nil {
			return nil, errors.Wrap(err, "creating redis store")
		}
	} else {
		log.Info("REDIS is not set, keeping invite snapshots in memory")
		bot.Snapshots = memory.New()
	}

	bot.Tracker = invites.New(bot, bot.Snapshots, bot.DB)

	if c.Influx.Enabled() {
		bot.Stats = stats.New(ctx, c.Influx.URL, c.Influx.Token, c.Influx.Org, c.Influx.Bucket)
		r.AddHandler(bot.Stats.EventHandler)
	}

	return bot, nil
}

// Open fetches the bot user and connects to the gateway.
func (bot *Bot) Open(ctx context.Context) error {
	s, _ := bot.Router.StateFromGuildID(0)
	me, err := s.Me()
	if err != nil {
		return errors.Wrap(err, "fetching bot user")
	}
	bot.Router.Bot = me
	// normally creating a Context would do this, but as we set the user above, that doesn't work
	bot.Router.Prefixes = append(bot.Router.Prefixes, "<@"+me.ID.String()+">", "<@!"+me.ID.String()+">")

	log.Infof("User: %v (%v)", me.Tag(), me.ID)
	log.Debug("opening gateway connection")

	return bot.Router.ShardManager.Open(ctx)
}

func (bot *Bot) Close() error {
	err := bot.Router.ShardManager.Close()

	if c, ok := bot.Snapshots.(interface{ Close() error }); ok {
		if cerr := c.Close(); cerr != nil {
			log.Errorf("closing snapshot store: %v", cerr)
		}
	}
	bot.DB.Close()

	return err
}

// AddHandler adds handlers to all states.
func (bot *Bot) AddHandler(i ...any) {
	for _, hn := range i {
		bot.Router.AddHandler(hn)
	}
}

// State returns the state for the shard the given guild is on.
func (bot *Bot) State(guildID discord.GuildID) *state.State {
	s, _ := bot.Router.StateFromGuildID(guildID)
	return s
}

// GuildInvites returns all of a guild's invites.
func (bot *Bot) GuildInvites(guildID discord.GuildID) ([]discord.Invite, error) {
	return bot.State(guildID).GuildInvites(guildID)
}

// Member returns a guild member, from the state cache if possible.
func (bot *Bot) Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	return bot.State(guildID).Member(guildID, userID)
}

// Settings returns a guild's settings, logging (and falling back to defaults) on error.
func (bot *Bot) Settings(guildID discord.GuildID) db.GuildSettings {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := bot.DB.Settings(ctx, guildID)
	if err != nil {
		log.Errorf("getting settings for %v: %v", guildID, err)
		return db.GuildSettings{ID: guildID, ThemeColour: int(common.DefaultTheme)}
	}
	return s
}
