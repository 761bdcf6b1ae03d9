package bot

import (
	"io/fs"

	"emperror.dev/errors"
	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
)

// Config is the bot's configuration, read from the environment (and a .env file, if there is one).
type Config struct {
	Token    string   `env:"DISCORD_TOKEN,notEmpty"`
	Prefixes []string `env:"PREFIXES" envSeparator:"," envDefault:"!"`
	Owners   []uint64 `env:"OWNER" envSeparator:","`

	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	// Redis is optional; invite snapshots are kept in memory if it's not set.
	Redis  string `env:"REDIS"`
	Sentry string `env:"SENTRY_URL"`

	Influx InfluxConfig `envPrefix:"INFLUX_"`

	// HTTPListen is the address for the HTTP API. It's disabled if empty.
	HTTPListen string `env:"HTTP_LISTEN"`
	// HTTPToken is the bearer token required by the HTTP API. If empty, the API is unauthenticated.
	HTTPToken string `env:"HTTP_TOKEN"`

	SupportServer string `env:"SUPPORT_SERVER"`

	Debug bool `env:"DEBUG_LOGGING"`
	// NoAutoMigrate specifies if migrations should be done automatically when the bot starts.
	// If this is set to true, migrations must be done manually by running the `migrate` command.
	NoAutoMigrate bool `env:"NO_AUTO_MIGRATE"`
}

type InfluxConfig struct {
	URL    string `env:"URL"`
	Token  string `env:"TOKEN"`
	Org    string `env:"ORG"`
	Bucket string `env:"BUCKET" envDefault:"warden"`
}

// Enabled returns true if InfluxDB metrics are configured.
func (c InfluxConfig) Enabled() bool {
	return c.URL != "" && c.Token != ""
}

// OwnerIDs returns the bot owners' user IDs.
func (c Config) OwnerIDs() []discord.UserID {
	ids := make([]discord.UserID, 0, len(c.Owners))
	for _, id := range c.Owners {
		ids = append(ids, discord.UserID(id))
	}
	return ids
}

// ReadConfig loads .env files (if any exist) and parses the environment into a Config.
func ReadConfig(files ...string) (c Config, err error) {
	err = godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, errors.Wrap(err, "loading .env file")
	}

	err = env.Parse(&c)
	if err != nil {
		return c, errors.Wrap(err, "parsing environment")
	}
	return c, nil
}
