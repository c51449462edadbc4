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

package soupbintcp

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/prometheus/client_golang/prometheus"
)

// Session frames SoupBinTCP packets over a net.Conn. It is not safe for
// concurrent Send and Recv from multiple goroutines beyond the usual one
// reader/one writer split a duplex TCP connection allows.
type Session struct {
	conn net.Conn
}

// NewSession wraps conn for SoupBinTCP packet framing.
func NewSession(conn net.Conn) *Session {
	return &Session{conn: conn}
}

// Close closes the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Send writes one packet: a big-endian uint16 length (covering the type
// byte and payload, not itself), the type byte, and the payload.
func (s *Session) Send(p Packet) error {
	if len(p.Payload) > maxPacketLength {
		return fmt.Errorf("soupbintcp: payload length %d exceeds %d", len(p.Payload), maxPacketLength)
	}
	length := uint16(len(p.Payload) + 1)
	header := make([]byte, 3)
	binary.BigEndian.PutUint16(header, length)
	header[2] = byte(p.Type)
	if _, err := s.conn.Write(header); err != nil {
		return fmt.Errorf("soupbintcp: write header: %w", err)
	}
	if len(p.Payload) > 0 {
		if _, err := s.conn.Write(p.Payload); err != nil {
			return fmt.Errorf("soupbintcp: write payload: %w", err)
		}
	}
	PacketsSentTotal.WithLabelValues(p.Type.String()).Inc()
	BytesSentTotal.Add(float64(2 + length))
	return nil
}

// Recv blocks for exactly one packet from the connection.
func (s *Session) Recv() (Packet, error) {
	var header [2]byte
	if _, err := io.ReadFull(s.conn, header[:]); err != nil {
		return Packet{}, err
	}
	length := binary.BigEndian.Uint16(header[:])
	if length == 0 {
		return Packet{}, fmt.Errorf("soupbintcp: zero-length packet")
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(s.conn, body); err != nil {
		return Packet{}, fmt.Errorf("soupbintcp: read body: %w", err)
	}
	p := Packet{Type: PacketType(body[0]), Payload: body[1:]}
	PacketsReceivedTotal.WithLabelValues(p.Type.String()).Inc()
	BytesReceivedTotal.Add(float64(2 + length))
	return p, nil
}

var (
	PacketsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "soupbintcp_packets_sent_total",
		Help: "Total number of SoupBinTCP packets sent, by packet type",
	}, []string{"type"})

	PacketsReceivedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "soupbintcp_packets_received_total",
		Help: "Total number of SoupBinTCP packets received, by packet type",
	}, []string{"type"})

	BytesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "soupbintcp_bytes_sent_total",
		Help: "Total number of bytes sent over SoupBinTCP sessions",
	})

	BytesReceivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "soupbintcp_bytes_received_total",
		Help: "Total number of bytes received over SoupBinTCP sessions",
	})
)
