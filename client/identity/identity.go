// Package identity signs a user in against the configured credential endpoint.
//
// Two response shapes exist: the demo store answers {"token": "..."} and
// Maestro answers {"data": {"accessToken", "refreshToken", "expiresIn"}}. The
// response is decoded into a generic map first and then into the variant's
// struct, so a missing or mistyped field fails here instead of leaking an empty
// token into the session.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
)

type Variant string

const (
	VariantToken   Variant = "token"
	VariantMaestro Variant = "maestro"
)

// ErrInvalidCredentials is returned for every failed login. The wrapped cause
// is for logs only.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is a validated login result.
type Credentials struct {
	Variant      Variant
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the access token lifetime in seconds; 0 when unknown.
	ExpiresIn int
}

// Expiry returns when the access token expires, or nil when unknown.
func (c Credentials) Expiry(now time.Time) *time.Time {
	if c.ExpiresIn <= 0 {
		return nil
	}
	t := now.Add(time.Duration(c.ExpiresIn) * time.Second)
	return &t
}

type Config struct {
	Variant      Variant
	URL          string
	ClientID     string
	ClientSecret string
}

type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config, hc *http.Client) *Client {
	if cfg.Variant == "" {
		cfg.Variant = VariantToken
	}
	return &Client{cfg: cfg, hc: hc}
}

func (c *Client) Variant() Variant {
	return c.cfg.Variant
}

// Login exchanges username and password for credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*Credentials, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	b, err := json.Marshal(c.requestBody(username, password))
	if err != nil {
		return nil, invalid(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(b))
	if err != nil {
		return nil, invalid(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, invalid(err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, invalid(fmt.Errorf("status %d", res.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, invalid(err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, invalid(err)
	}
	return ParseResponse(c.cfg.Variant, body)
}

func (c *Client) requestBody(username, password string) interface{} {
	if c.cfg.Variant == VariantMaestro {
		return map[string]string{
			"userName":      username,
			"password":      password,
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
			"grant_type":    "password",
		}
	}
	return map[string]string{
		"username": username,
		"password": password,
	}
}

type tokenResponse struct {
	Token string `mapstructure:"token"`
}

type maestroResponse struct {
	Data *struct {
		AccessToken  string `mapstructure:"accessToken"`
		RefreshToken string `mapstructure:"refreshToken"`
		ExpiresIn    int    `mapstructure:"expiresIn"`
	} `mapstructure:"data"`
}

// ParseResponse validates a decoded login body for variant.
func ParseResponse(variant Variant, body map[string]interface{}) (*Credentials, error) {
	if body == nil {
		return nil, invalid(errors.New("empty body"))
	}
	switch variant {
	case VariantMaestro:
		var r maestroResponse
		if err := mapstructure.Decode(body, &r); err != nil {
			return nil, invalid(err)
		}
		if r.Data == nil || r.Data.AccessToken == "" {
			return nil, invalid(errors.New("missing data.accessToken"))
		}
		return &Credentials{
			Variant:      VariantMaestro,
			AccessToken:  r.Data.AccessToken,
			RefreshToken: r.Data.RefreshToken,
			ExpiresIn:    r.Data.ExpiresIn,
		}, nil
	case VariantToken:
		var r tokenResponse
		if err := mapstructure.Decode(body, &r); err != nil {
			return nil, invalid(err)
		}
		if r.Token == "" {
			return nil, invalid(errors.New("missing token"))
		}
		return &Credentials{Variant: VariantToken, AccessToken: r.Token}, nil
	default:
		return nil, invalid(fmt.Errorf("unknown variant %q", variant))
	}
}

func invalid(cause error) error {
	return fmt.Errorf("%w: %v", ErrInvalidCredentials, cause)
}
