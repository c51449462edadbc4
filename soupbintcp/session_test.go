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
	"net"
	"testing"
)

func TestSessionSendRecv(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	clientSession := NewSession(client)
	serverSession := NewSession(server)

	want := Packet{Type: SequencedData, Payload: []byte("hello fast")}

	done := make(chan error, 1)
	go func() {
		done <- clientSession.Send(want)
	}()

	got, err := serverSession.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if sendErr := <-done; sendErr != nil {
		t.Fatalf("Send: %v", sendErr)
	}
	if got.Type != want.Type {
		t.Fatalf("Type = %v, want %v", got.Type, want.Type)
	}
	if string(got.Payload) != string(want.Payload) {
		t.Fatalf("Payload = %q, want %q", got.Payload, want.Payload)
	}
}

func TestLoginRequestPayloadRoundTrip(t *testing.T) {
	want := LoginRequestPayload{
		Username:                "user01",
		Password:                "secret",
		RequestedSession:        "",
		RequestedSequenceNumber: "1",
	}
	encoded := want.Encode()
	got, err := DecodeLoginRequestPayload(encoded)
	if err != nil {
		t.Fatalf("DecodeLoginRequestPayload: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
