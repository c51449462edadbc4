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

// Package soupbintcp implements the SoupBinTCP session envelope: a
// length-prefixed packet framing used to carry sequenced and
// unsequenced application messages (in this module, FAST messages)
// between an exchange gateway and its clients. It is a thin, unmodified
// collaborator alongside the FAST codec, not a redesign target.
package soupbintcp

import "fmt"

// PacketType is the single byte following a packet's length prefix.
type PacketType byte

const (
	Debug             PacketType = '+'
	LoginAccepted     PacketType = 'A'
	LoginRejected     PacketType = 'J'
	SequencedData     PacketType = 'S'
	ServerHeartbeat   PacketType = 'H'
	EndOfSession      PacketType = 'Z'
	LoginRequest      PacketType = 'L'
	UnsequencedData   PacketType = 'U'
	ClientHeartbeat   PacketType = 'R'
	LogoutRequest     PacketType = 'O'
)

func (t PacketType) String() string {
	switch t {
	case Debug:
		return "Debug"
	case LoginAccepted:
		return "LoginAccepted"
	case LoginRejected:
		return "LoginRejected"
	case SequencedData:
		return "SequencedData"
	case ServerHeartbeat:
		return "ServerHeartbeat"
	case EndOfSession:
		return "EndOfSession"
	case LoginRequest:
		return "LoginRequest"
	case UnsequencedData:
		return "UnsequencedData"
	case ClientHeartbeat:
		return "ClientHeartbeat"
	case LogoutRequest:
		return "LogoutRequest"
	default:
		return fmt.Sprintf("PacketType(%q)", byte(t))
	}
}

// Packet is one framed SoupBinTCP packet: its type tag and payload. The
// wire length prefix covers Type plus Payload but not itself.
type Packet struct {
	Type    PacketType
	Payload []byte
}

// maxPacketLength bounds a single packet's payload, matching the 16-bit
// length prefix's maximum representable value minus the type byte.
const maxPacketLength = 0xFFFF - 1

// LoginRequestPayload is the fixed-width body of a LoginRequest packet.
type LoginRequestPayload struct {
	Username                string
	Password                string
	RequestedSession        string
	RequestedSequenceNumber string
}

// LoginAcceptedPayload is the fixed-width body of a LoginAccepted packet.
type LoginAcceptedPayload struct {
	Session        string
	SequenceNumber string
}

func fixedField(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)
	for i := len(s); i < width; i++ {
		b[i] = ' '
	}
	return b
}

// Encode renders p into its wire form, a fixed-width space-padded Username(6)
// Password(10) RequestedSession(10) RequestedSequenceNumber(20).
func (p LoginRequestPayload) Encode() []byte {
	out := make([]byte, 0, 46)
	out = append(out, fixedField(p.Username, 6)...)
	out = append(out, fixedField(p.Password, 10)...)
	out = append(out, fixedField(p.RequestedSession, 10)...)
	out = append(out, fixedField(p.RequestedSequenceNumber, 20)...)
	return out
}

// DecodeLoginRequestPayload parses a LoginRequest packet's payload.
func DecodeLoginRequestPayload(b []byte) (LoginRequestPayload, error) {
	if len(b) != 46 {
		return LoginRequestPayload{}, fmt.Errorf("soupbintcp: login request payload length %d, want 46", len(b))
	}
	return LoginRequestPayload{
		Username:                trimField(b[0:6]),
		Password:                trimField(b[6:16]),
		RequestedSession:        trimField(b[16:26]),
		RequestedSequenceNumber: trimField(b[26:46]),
	}, nil
}

// Encode renders p into its wire form, Session(10) SequenceNumber(20).
func (p LoginAcceptedPayload) Encode() []byte {
	out := make([]byte, 0, 30)
	out = append(out, fixedField(p.Session, 10)...)
	out = append(out, fixedField(p.SequenceNumber, 20)...)
	return out
}

// DecodeLoginAcceptedPayload parses a LoginAccepted packet's payload.
func DecodeLoginAcceptedPayload(b []byte) (LoginAcceptedPayload, error) {
	if len(b) != 30 {
		return LoginAcceptedPayload{}, fmt.Errorf("soupbintcp: login accepted payload length %d, want 30", len(b))
	}
	return LoginAcceptedPayload{
		Session:        trimField(b[0:10]),
		SequenceNumber: trimField(b[10:30]),
	}, nil
}

func trimField(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return string(b[:end])
}
