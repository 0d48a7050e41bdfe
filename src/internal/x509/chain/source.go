// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultPort is dialed when the host carries no port.
const DefaultPort = 443

// ErrChainRetrieval indicates that the certificate chain could not be obtained.
var ErrChainRetrieval = errors.New("x509chain: chain retrieval failed")

// Source supplies the raw certificates a host presents, leaf first.
type Source interface {
	Fetch(ctx context.Context, host string) ([][]byte, error)
}

// TLSSource captures the chain offered during a TLS handshake.
//
// The handshake skips verification: the chain is validated afterwards by
// [Validator], and rejecting it here would hide the reason.
type TLSSource struct {
	Timeout     time.Duration
	DefaultPort int
}

// NewTLSSource returns a source dialing with the given timeout.
func NewTLSSource(timeout time.Duration) *TLSSource {
	return &TLSSource{Timeout: timeout, DefaultPort: DefaultPort}
}

// Fetch dials host, which may carry a port, and returns the DER encoding of
// every certificate the server sent. Errors wrap [ErrChainRetrieval].
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - host: Host name or address, with an optional port
//
// Returns:
//   - [][]byte: DER certificates, leaf first
//   - error: Error if the connection or handshake fails
func (s *TLSSource) Fetch(ctx context.Context, host string) ([][]byte, error) {
	addr, serverName, err := s.address(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChainRetrieval, err)
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: s.Timeout},
		Config: &tls.Config{
			// We just want the cert chain, not to verify
			InsecureSkipVerify: true,
			ServerName:         serverName,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to %s: %w", ErrChainRetrieval, addr, err)
	}
	defer conn.Close()

	peerCerts := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, fmt.Errorf("%w: no certificates received from %s", ErrChainRetrieval, addr)
	}

	raws := make([][]byte, len(peerCerts))
	for i, cert := range peerCerts {
		raws[i] = cert.Raw
	}
	return raws, nil
}

// address splits host into a dial address and an SNI server name.
func (s *TLSSource) address(host string) (addr, serverName string, err error) {
	if host == "" {
		return "", "", errors.New("empty host")
	}

	name, port, err := net.SplitHostPort(host)
	if err != nil {
		// No port; the host may still be a bracketed IPv6 literal.
		name = host
		if len(name) > 1 && name[0] == '[' && name[len(name)-1] == ']' {
			name = name[1 : len(name)-1]
		}
		p := s.DefaultPort
		if p == 0 {
			p = DefaultPort
		}
		port = strconv.Itoa(p)
	}
	return net.JoinHostPort(name, port), name, nil
}
