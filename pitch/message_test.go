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

package pitch

import (
	"encoding/binary"
	"testing"
)

func TestDecodeOrderCancel(t *testing.T) {
	buf := make([]byte, sizeOrderCancel)
	buf[0] = byte(TypeOrderCancel)
	binary.LittleEndian.PutUint32(buf[1:5], 123456)
	binary.LittleEndian.PutUint64(buf[5:13], 99)
	binary.LittleEndian.PutUint32(buf[13:17], 50)

	msg, n, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != sizeOrderCancel {
		t.Fatalf("consumed %d bytes, want %d", n, sizeOrderCancel)
	}
	got, ok := msg.Payload.(OrderCancel)
	if !ok {
		t.Fatalf("Payload type = %T, want OrderCancel", msg.Payload)
	}
	if got.Timestamp != 123456 || got.OrderID != 99 || got.CanceledShares != 50 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	if _, _, err := Decode([]byte{0xFF}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	buf := []byte{byte(TypeOrderCancel), 0x01}
	if _, _, err := Decode(buf); err == nil {
		t.Fatalf("expected error for short buffer")
	}
}
