package campusfound

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusfound/campusfound-go/apierror"
	"github.com/campusfound/campusfound-go/credstore"
	"github.com/campusfound/campusfound-go/signal"
	"github.com/campusfound/campusfound-go/transport"
)

// Builder assembles a [Client]. Construction is allocation-only; no I/O
// happens before [Client.Initialize].
type Builder struct {
	config     Config
	httpClient *http.Client
	store      credstore.Store
	redis      *redis.Client
	logger     zerolog.Logger
	notifier   transport.Notifier
	hub        *signal.Hub

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL sets the service root without replacing the rest of the config.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.HTTP.BaseURL = baseURL
	return b
}

// WithHTTPClient replaces the underlying HTTP client. The configured timeout
// is ignored when an explicit client is supplied.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithStore selects the persisted-session backend.
func (b *Builder) WithStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithRedis selects a Redis-backed persisted-session store using the
// configured prefix. It overrides WithStore.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithLogger attaches a structured logger. The default discards everything.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithNotifier attaches a user-notification sink for classified failures.
// The default discards notifications.
func (b *Builder) WithNotifier(n transport.Notifier) *Builder {
	b.notifier = n
	return b
}

// WithHub attaches an existing signal hub so the embedding application can
// observe auth:logout alongside the SDK. The default is a private hub.
func (b *Builder) WithHub(hub *signal.Hub) *Builder {
	b.hub = hub
	return b
}

// Build validates the configuration and wires the client. The builder can be
// consumed once.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	store := b.store
	if b.redis != nil {
		store = credstore.NewRedis(b.redis, b.config.Session.RedisPrefix)
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	hub := b.hub
	if hub == nil {
		hub = signal.NewHub()
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: b.config.HTTP.Timeout.Std()}
	}

	c := &Client{
		cfg:     b.config,
		log:     b.logger,
		store:   store,
		hub:     hub,
		metrics: NewMetrics(),
	}

	pipeline, err := transport.New(transport.Params{
		BaseURL:    b.config.HTTP.BaseURL,
		HTTPClient: httpClient,
		Tokens:     c.Token,
		Hub:        hub,
		Logger:     b.logger,
		Ring:       apierror.NewLog(b.config.Errors.LogCapacity),
		Notifier:   b.notifier,
		Recorder:   c.metrics,
		UserAgent:  b.config.HTTP.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	c.pipeline = pipeline

	// The session's own invalidation listener registers first so later
	// subscribers observe an already-cleared session.
	c.unsubscribe = hub.Subscribe(signal.AuthLogout, c.handleForcedLogout)

	b.built = true
	return c, nil
}
