/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package transport adapts the teacher's TCP/UDP listener pattern to hand
// each accepted connection's bytes to whichever protocol session (a raw
// FAST buffer, a SoupBinTCP session, or a FIX tag=value stream) the
// caller configures a listener with, instead of decoding IPFIX directly.
package transport

import (
	"context"
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tradecodecs/fastcodec/fast"
)

// ConnHandler processes one accepted connection until it closes or ctx is
// done. Implementations typically wrap conn in a soupbintcp.Session or
// read raw FAST buffers directly with a fast.Decoder.
type ConnHandler func(ctx context.Context, conn net.Conn)

// TCPListener accepts connections on bindAddr and dispatches each one to
// Handler in its own goroutine, mirroring the teacher's per-connection
// goroutine TCP listener with Prometheus connection accounting.
type TCPListener struct {
	bindAddr string
	Handler  ConnHandler

	listener net.Listener
	ready    chan struct{}
}

// NewTCPListener builds a listener bound to bindAddr; handler is invoked
// once per accepted connection.
func NewTCPListener(bindAddr string, handler ConnHandler) *TCPListener {
	return &TCPListener{bindAddr: bindAddr, Handler: handler, ready: make(chan struct{})}
}

// Addr blocks until the listener has bound a socket, then returns its
// address. Intended for tests that need the ephemeral port chosen for
// bindAddr ":0".
func (l *TCPListener) Addr() net.Addr {
	<-l.ready
	return l.listener.Addr()
}

// Listen blocks, accepting connections until ctx is cancelled or the
// listener is closed.
func (l *TCPListener) Listen(ctx context.Context) error {
	logger := fast.FromContext(ctx)

	ln, err := net.Listen("tcp", l.bindAddr)
	if err != nil {
		return err
	}
	l.listener = ln
	close(l.ready)
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				TCPErrorsTotal.Inc()
				logger.Error(err, "transport: failed to accept TCP connection", "addr", l.bindAddr)
				continue
			}
			TCPActiveConnections.Inc()
			go func(conn net.Conn) {
				defer TCPActiveConnections.Dec()
				defer conn.Close()
				l.Handler(ctx, conn)
			}(conn)
		}
	}()

	logger.Info("transport: started TCP listener", "addr", l.bindAddr)
	select {
	case <-ctx.Done():
	case <-done:
	}
	logger.Info("transport: shutting down TCP listener", "addr", l.bindAddr)
	return nil
}

// Close stops accepting new connections; in-flight handlers are left to
// observe ctx.Done on their own.
func (l *TCPListener) Close() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

var (
	TCPActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transport_tcp_active_connections",
		Help: "Total number of active connections currently maintained by the TCP listener",
	})
	TCPErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transport_tcp_errors_total",
		Help: "Total number of errors encountered accepting TCP connections",
	})
)
