package request

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/kodekoding/slackmate/go/network"
	"github.com/kodekoding/slackmate/go/notifications"
	"github.com/kodekoding/slackmate/go/session"
)

const DefaultAPIURL = "https://slack.com/api"

type (
	// LogoutFunc signs the given team out; it runs when Slack reports the
	// token as revoked or the account as inactive
	LogoutFunc = session.LogoutFunc

	ClientOption func(*Client)

	// Client performs calls against the Slack web API on behalf of the current team.
	// It is safe for concurrent use.
	Client struct {
		apiURL   string
		http     *resty.Client
		network  network.Checker
		session  session.Reader
		notifier notifications.Notifier
		logout   LogoutFunc
	}
)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = resty.NewWithClient(client)
		}
	}
}

func WithRestyClient(client *resty.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithChecker(checker network.Checker) ClientOption {
	return func(c *Client) {
		if checker != nil {
			c.network = checker
		}
	}
}

// WithSession sets the default session; context.SetSession overrides it per call
func WithSession(reader session.Reader) ClientOption {
	return func(c *Client) {
		c.session = reader
	}
}

// WithNotifier sets where failure alerts go; context.SetNotifier overrides it per call
func WithNotifier(notifier notifications.Notifier) ClientOption {
	return func(c *Client) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithLogout signs teams of the default session out. Calls running on a
// context.SetSession override use the logout paired with that override instead.
func WithLogout(logout LogoutFunc) ClientOption {
	return func(c *Client) {
		c.logout = logout
	}
}

// New creates a client for apiURL, DefaultAPIURL when empty.
// Without options the network is assumed up and alerts are dropped.
func New(apiURL string, opts ...ClientOption) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	client := &Client{
		apiURL:   strings.TrimRight(apiURL, "/"),
		http:     resty.New(),
		network:  network.Static(true),
		notifier: notifications.Discard,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.http.SetLogger(newRestyLogger())

	return client
}

func (c *Client) APIURL() string {
	return c.apiURL
}
