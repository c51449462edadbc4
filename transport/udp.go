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

package transport

import (
	"context"
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tradecodecs/fastcodec/fast"
)

// UDPPacketBufferSize bounds a single read from the UDP socket. PITCH
// multicast feeds are typically kept well under the path MTU by the
// exchange, so one read always yields exactly one datagram.
var UDPPacketBufferSize = 1500

// PacketHandler processes one received UDP datagram.
type PacketHandler func(ctx context.Context, packet []byte)

// UDPListener reads datagrams off bindAddr and dispatches each to
// Handler synchronously on the listener's own goroutine, matching PITCH's
// ordered-delivery assumption (unlike TCPListener, handlers here must not
// block on per-packet work).
type UDPListener struct {
	bindAddr string
	Handler  PacketHandler

	conn net.PacketConn
}

// NewUDPListener builds a listener bound to bindAddr.
func NewUDPListener(bindAddr string, handler PacketHandler) *UDPListener {
	return &UDPListener{bindAddr: bindAddr, Handler: handler}
}

// Listen blocks, reading datagrams until ctx is cancelled or the
// underlying socket is closed.
func (l *UDPListener) Listen(ctx context.Context) error {
	logger := fast.FromContext(ctx)

	conn, err := net.ListenPacket("udp", l.bindAddr)
	if err != nil {
		logger.Error(err, "transport: failed to bind UDP listener", "addr", l.bindAddr)
		return err
	}
	l.conn = conn
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, UDPPacketBufferSize)
		for {
			n, _, err := conn.ReadFrom(buf)
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				UDPErrorsTotal.Inc()
				logger.Error(err, "transport: failed to read from UDP socket")
				return
			}
			UDPPacketsTotal.Inc()
			UDPBytesTotal.Add(float64(n))

			packet := make([]byte, n)
			copy(packet, buf[:n])
			l.Handler(ctx, packet)
		}
	}()

	logger.Info("transport: started UDP listener", "addr", l.bindAddr)
	select {
	case <-ctx.Done():
	case <-done:
	}
	logger.Info("transport: shutting down UDP listener", "addr", l.bindAddr)
	return nil
}

// Close stops the listener's read loop.
func (l *UDPListener) Close() error {
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}

var (
	UDPPacketsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transport_udp_packets_total",
		Help: "Total number of UDP datagrams received",
	})
	UDPErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transport_udp_errors_total",
		Help: "Total number of errors encountered reading from the UDP listener",
	})
	UDPBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transport_udp_bytes_total",
		Help: "Total number of bytes read from the UDP listener",
	})
)
