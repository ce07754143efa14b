package collector

import (
	"fmt"
	"log/slog"
	"net/url"

	golibvirt "github.com/digitalocean/go-libvirt"
)

// Session owns the RPC connection to the virtualization host. There is no
// reconnect policy: once Healthy reports an error the session is dead and the
// caller is expected to exit.
type Session struct {
	client *golibvirt.Libvirt
	logger *slog.Logger
}

// Open dials the libvirt daemon at uri. An empty uri falls back to the local
// system socket.
func Open(uri string, logger *slog.Logger) (*Session, error) {
	if uri == "" {
		uri = string(golibvirt.QEMUSystem)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse libvirt uri %q: %w", uri, err)
	}

	client, err := golibvirt.ConnectToURI(u)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", u.Redacted(), err)
	}
	logger.Info("libvirt connected", "uri", u.Redacted())

	return &Session{client: client, logger: logger}, nil
}

// Client exposes the underlying libvirt client for lifecycle calls.
func (s *Session) Client() *golibvirt.Libvirt {
	return s.client
}

// Healthy probes the connection with a cheap RPC round-trip.
func (s *Session) Healthy() error {
	if _, err := s.client.Version(); err != nil {
		return fmt.Errorf("libvirt version check failed: %w", err)
	}
	return nil
}

func (s *Session) Close() error {
	if err := s.client.Disconnect(); err != nil {
		s.logger.Warn("libvirt disconnect failed", "error", err)
		return err
	}
	return nil
}
