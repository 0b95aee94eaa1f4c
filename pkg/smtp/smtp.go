// Package smtp delivers composed messages over SMTP with PLAIN auth.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

const (
	DefaultSecurePort = "465"
	DefaultPort       = "587"
)

// Server describes how to reach and authenticate against the relay
type Server struct {
	Host     string
	Port     string
	Username string
	Password string
	// Secure selects implicit TLS. Without it the client's StartTLSPolicy
	// decides whether the plain connection is upgraded.
	Secure bool
}

// StartTLSPolicy controls STARTTLS on connections without implicit TLS
type StartTLSPolicy string

const (
	// StartTLSOpportunistic upgrades when the server advertises STARTTLS
	StartTLSOpportunistic StartTLSPolicy = "opportunistic"
	// StartTLSRequired fails the send when the server cannot upgrade
	StartTLSRequired StartTLSPolicy = "required"
	// StartTLSNever keeps the session in plaintext
	StartTLSNever StartTLSPolicy = "never"
)

// ParseStartTLSPolicy maps a config value to a policy. Empty means opportunistic.
func ParseStartTLSPolicy(v string) (StartTLSPolicy, error) {
	switch p := StartTLSPolicy(v); p {
	case "":
		return StartTLSOpportunistic, nil
	case StartTLSOpportunistic, StartTLSRequired, StartTLSNever:
		return p, nil
	default:
		return "", fmt.Errorf("unknown STARTTLS policy %q", v)
	}
}

// Addr returns host:port, picking the default port for the TLS mode
func (s Server) Addr() string {
	port := s.Port
	if port == "" {
		port = DefaultPort
		if s.Secure {
			port = DefaultSecurePort
		}
	}
	return net.JoinHostPort(s.Host, port)
}

// Client sends one message per connection
type Client struct {
	timeout   time.Duration
	tlsConfig *tls.Config
	startTLS  StartTLSPolicy
}

// NewClient returns a Client whose dial and commands are bounded by timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{timeout: timeout, startTLS: StartTLSOpportunistic}
}

// WithStartTLS sets the STARTTLS policy for non-secure servers
func (c *Client) WithStartTLS(policy StartTLSPolicy) *Client {
	c.startTLS = policy
	return c
}

// WithTLSConfig overrides the TLS settings, e.g. to trust a test CA
func (c *Client) WithTLSConfig(cfg *tls.Config) *Client {
	c.tlsConfig = cfg
	return c
}

// Send delivers msg from the envelope sender to the recipients
func (c *Client) Send(ctx context.Context, server Server, from string, to []string, msg io.Reader) error {
	client, err := c.connect(ctx, server)
	if err != nil {
		return err
	}
	defer client.Close()

	if server.Username != "" {
		if err := client.Auth(sasl.NewPlainClient("", server.Username, server.Password)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.SendMail(from, to, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return client.Quit()
}

// connect returns a client that has negotiated TLS according to the
// server's mode and the STARTTLS policy.
func (c *Client) connect(ctx context.Context, server Server) (*smtp.Client, error) {
	upgrade := !server.Secure && c.startTLS == StartTLSRequired
	if !server.Secure && c.startTLS == StartTLSOpportunistic {
		offered, err := c.offersStartTLS(ctx, server)
		if err != nil {
			return nil, err
		}
		upgrade = offered
	}

	conn, err := c.dial(ctx, server)
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", server.Addr(), err)
	}

	var client *smtp.Client
	if upgrade {
		// NewClientStartTLS closes the connection on failure
		client, err = smtp.NewClientStartTLS(conn, c.tlsFor(server.Host))
		if err != nil {
			return nil, fmt.Errorf("smtp starttls: %w", err)
		}
	} else {
		client = smtp.NewClient(conn)
	}
	c.applyTimeouts(client)
	return client, nil
}

// offersStartTLS reads the EHLO capabilities on a throwaway connection. The
// client cannot upgrade a session it has already greeted, so the send itself
// always runs on a fresh connection.
func (c *Client) offersStartTLS(ctx context.Context, server Server) (bool, error) {
	conn, err := c.dial(ctx, server)
	if err != nil {
		return false, fmt.Errorf("smtp dial %s: %w", server.Addr(), err)
	}
	client := smtp.NewClient(conn)
	defer client.Close()
	c.applyTimeouts(client)

	if err := client.Hello("localhost"); err != nil {
		return false, fmt.Errorf("smtp hello: %w", err)
	}
	offered, _ := client.Extension("STARTTLS")
	_ = client.Quit()
	return offered, nil
}

func (c *Client) applyTimeouts(client *smtp.Client) {
	if c.timeout > 0 {
		client.CommandTimeout = c.timeout
		client.SubmissionTimeout = c.timeout
	}
}

func (c *Client) dial(ctx context.Context, server Server) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: c.timeout}

	if server.Secure {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: c.tlsFor(server.Host)}
		return tlsDialer.DialContext(ctx, "tcp", server.Addr())
	}
	return dialer.DialContext(ctx, "tcp", server.Addr())
}

func (c *Client) tlsFor(host string) *tls.Config {
	if c.tlsConfig != nil {
		cfg := c.tlsConfig.Clone()
		if cfg.ServerName == "" {
			cfg.ServerName = host
		}
		return cfg
	}
	return &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
}
