// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509chain "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/x509test"
)

func TestTLSSource_Fetch(t *testing.T) {
	chain := x509test.NewChain(t)

	srv := httptest.NewUnstartedServer(http.NotFoundHandler())
	srv.TLS = &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: chain.Raws(),
			PrivateKey:  chain.Leaf.Key,
		}},
	}
	srv.StartTLS()
	defer srv.Close()

	source := x509chain.NewTLSSource(5 * time.Second)

	t.Run("Returns Presented Chain In Order", func(t *testing.T) {
		raws, err := source.Fetch(context.Background(), srv.Listener.Addr().String())
		require.NoError(t, err)
		assert.Equal(t, chain.Raws(), raws)
	})

	t.Run("Connection Refused", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := l.Addr().String()
		l.Close()

		_, err = source.Fetch(context.Background(), addr)
		assert.ErrorIs(t, err, x509chain.ErrChainRetrieval)
	})

	t.Run("Canceled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.Fetch(ctx, srv.Listener.Addr().String())
		assert.ErrorIs(t, err, x509chain.ErrChainRetrieval)
	})

	t.Run("Empty Host", func(t *testing.T) {
		_, err := source.Fetch(context.Background(), "")
		assert.ErrorIs(t, err, x509chain.ErrChainRetrieval)
	})
}
