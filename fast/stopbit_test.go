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

package fast

import (
	"bytes"
	"testing"
)

func TestTransferUint300(t *testing.T) {
	b := NewBufferWithRefill(nil, 8, nil)
	if err := transferUint(b, 300); err != nil {
		t.Fatalf("transferUint: %v", err)
	}
	want := []byte{0x02, 0xAC}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("transferUint(300) = % X, want % X", b.Bytes(), want)
	}

	rb := NewBuffer(b.Bytes())
	v, err := parseUint(rb)
	if err != nil {
		t.Fatalf("parseUint: %v", err)
	}
	if v != 300 {
		t.Fatalf("parseUint round-trip = %d, want 300", v)
	}
}

func TestTransferIntNegative200(t *testing.T) {
	b := NewBufferWithRefill(nil, 8, nil)
	if err := transferInt(b, -200); err != nil {
		t.Fatalf("transferInt: %v", err)
	}
	want := []byte{0x7E, 0xB8}
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("transferInt(-200) = % X, want % X", b.Bytes(), want)
	}

	rb := NewBuffer(b.Bytes())
	v, err := parseInt(rb)
	if err != nil {
		t.Fatalf("parseInt: %v", err)
	}
	if v != -200 {
		t.Fatalf("parseInt round-trip = %d, want -200", v)
	}
}

func TestStopBitRoundTripUint(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 127, 128, 300, 16384, 1 << 40}
	for _, v := range values {
		b := NewBufferWithRefill(nil, 16, nil)
		if err := transferUint(b, v); err != nil {
			t.Fatalf("transferUint(%d): %v", v, err)
		}
		rb := NewBuffer(b.Bytes())
		got, err := parseUint(rb)
		if err != nil {
			t.Fatalf("parseUint(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d -> % X -> %d", v, b.Bytes(), got)
		}
		if rb.Remaining() != 0 {
			t.Fatalf("parseUint(%d) left %d unread bytes", v, rb.Remaining())
		}
	}
}

func TestStopBitRoundTripInt(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, 64, -65, 300, -300, 1 << 40, -(1 << 40)}
	for _, v := range values {
		b := NewBufferWithRefill(nil, 16, nil)
		if err := transferInt(b, v); err != nil {
			t.Fatalf("transferInt(%d): %v", v, err)
		}
		rb := NewBuffer(b.Bytes())
		got, err := parseInt(rb)
		if err != nil {
			t.Fatalf("parseInt(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d -> % X -> %d", v, b.Bytes(), got)
		}
	}
}

func TestParsePmapTrailingZeroTrim(t *testing.T) {
	p := &Pmap{}
	p.Set(0)
	p.Set(10)
	b := NewBufferWithRefill(nil, 8, nil)
	if err := p.encode(b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(b.Bytes()) != 2 {
		t.Fatalf("expected 2-byte pmap, got % X", b.Bytes())
	}
	if b.Bytes()[1]&0x80 == 0 {
		t.Fatalf("final pmap byte missing stop bit: % X", b.Bytes())
	}

	rb := NewBuffer(b.Bytes())
	got, err := parsePmap(rb)
	if err != nil {
		t.Fatalf("parsePmap: %v", err)
	}
	if !got.IsSet(0) || !got.IsSet(10) || got.IsSet(1) {
		t.Fatalf("parsePmap round trip produced wrong bits: %+v", got)
	}
}
