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

package fixsession

import "testing"

func TestEncodeParseRoundTrip(t *testing.T) {
	msg := Message{
		BeginString: "FIX.4.4",
		MsgType:     "D",
		Fields: []Field{
			{Tag: 11, Value: "ORDER001"},
			{Tag: 55, Value: "AAPL"},
			{Tag: 54, Value: "1"},
		},
	}

	wire := msg.Encode()
	got, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.BeginString != msg.BeginString {
		t.Fatalf("BeginString = %q, want %q", got.BeginString, msg.BeginString)
	}
	if got.MsgType != msg.MsgType {
		t.Fatalf("MsgType = %q, want %q", got.MsgType, msg.MsgType)
	}
	if len(got.Fields) != len(msg.Fields) {
		t.Fatalf("Fields = %+v, want %+v", got.Fields, msg.Fields)
	}
	for i, f := range msg.Fields {
		if got.Fields[i] != f {
			t.Fatalf("Fields[%d] = %+v, want %+v", i, got.Fields[i], f)
		}
	}
}

func TestParseRejectsBadChecksum(t *testing.T) {
	msg := Message{BeginString: "FIX.4.4", MsgType: "0"}
	wire := msg.Encode()
	wire[len(wire)-4] = '9' // corrupt one checksum digit
	if _, err := Parse(wire); err == nil {
		t.Fatalf("expected checksum mismatch error")
	}
}
