package linkapi

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// DefaultTimeout bounds every remote call when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config selects whether and where the real backend is called.
type Config struct {
	UseRealAPI bool          `json:"use_real_api"`
	APIURL     string        `json:"api_url"`
	Timeout    time.Duration `json:"-"`
}

// Client talks to the aggregation backend.
type Client struct {
	cfg        Config
	baseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for cfg. Cookies set by the backend are kept for
// the lifetime of the client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	jar, _ := cookiejar.New(nil)

	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(strings.TrimSpace(cfg.APIURL), "/"),
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
	}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config { return c.cfg }

// Enabled reports whether calls will reach the network.
func (c *Client) Enabled() bool { return c.cfg.UseRealAPI }
