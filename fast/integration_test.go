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

import "testing"

func quoteTemplate() *Template {
	element := &Template{
		Name: "Level",
		Fields: []*FieldDescriptor{
			{Name: "Price", Type: TypeDecimal, Operator: OpNone, Mandatory: true},
			{Name: "Qty", Type: TypeUint, Operator: OpNone, Mandatory: true},
		},
	}
	return &Template{
		Id:   1,
		Name: "Quote",
		Fields: []*FieldDescriptor{
			{Name: "Symbol", Type: TypeAscii, Operator: OpCopy, Mandatory: true, PmapBit: 1},
			{Name: "BidPrice", Type: TypeDecimal, Operator: OpDelta, Mandatory: false},
			{Name: "BidSize", Type: TypeUint, Operator: OpIncrement, Mandatory: false, PmapBit: 2},
			{
				Name:      "Levels",
				Type:      TypeSequence,
				Operator:  OpNone,
				Mandatory: false,
				Element:   element,
				Length:    &FieldDescriptor{Name: "LevelsCount", Type: TypeUint, Operator: OpNone, Mandatory: false},
			},
		},
	}
}

func TestDecoderEncoderRoundTrip(t *testing.T) {
	catalog := NewCatalog(quoteTemplate())
	enc := NewEncoder(catalog)
	dec := NewDecoder(catalog)

	msg1 := &Message{
		TemplateId: 1,
		Values: map[string]Value{
			"Symbol":   AsciiValue("AAPL"),
			"BidPrice": DecimalValue{Exp: -2, Mnt: 15000},
			"BidSize":  UintValue(100),
			"Levels": SequenceValue{
				{"Price": DecimalValue{Exp: -2, Mnt: 15050}, "Qty": UintValue(10)},
				{"Price": DecimalValue{Exp: -2, Mnt: 15025}, "Qty": UintValue(20)},
			},
		},
	}

	out1 := NewBufferWithRefill(nil, 4096, nil)
	if err := enc.Encode(out1, msg1); err != nil {
		t.Fatalf("Encode msg1: %v", err)
	}

	got1, err := dec.Decode(NewBuffer(out1.Bytes()))
	if err != nil {
		t.Fatalf("Decode msg1: %v", err)
	}
	if got1.Values["Symbol"] != AsciiValue("AAPL") {
		t.Fatalf("Symbol = %v, want AAPL", got1.Values["Symbol"])
	}
	if got1.Values["BidPrice"] != (DecimalValue{Exp: -2, Mnt: 15000}) {
		t.Fatalf("BidPrice = %v", got1.Values["BidPrice"])
	}
	if got1.Values["BidSize"] != UintValue(100) {
		t.Fatalf("BidSize = %v, want 100", got1.Values["BidSize"])
	}
	levels1, ok := got1.Values["Levels"].(SequenceValue)
	if !ok || len(levels1) != 2 {
		t.Fatalf("Levels = %#v", got1.Values["Levels"])
	}
	if levels1[0]["Qty"] != UintValue(10) || levels1[1]["Qty"] != UintValue(20) {
		t.Fatalf("Levels rows wrong: %#v", levels1)
	}

	// Message 2: Symbol repeats (COPY should omit the field on the wire,
	// but the decoder must still reproduce it from carried state).
	// BidSize continues its natural +1 increment with no pmap bit set.
	// BidPrice moves by +200 in the mantissa with no exponent change.
	msg2 := &Message{
		TemplateId: 1,
		Values: map[string]Value{
			"Symbol":   AsciiValue("AAPL"),
			"BidPrice": DecimalValue{Exp: -2, Mnt: 15200},
			"BidSize":  UintValue(101),
		},
	}
	out2 := NewBufferWithRefill(nil, 4096, nil)
	if err := enc.Encode(out2, msg2); err != nil {
		t.Fatalf("Encode msg2: %v", err)
	}

	got2, err := dec.Decode(NewBuffer(out2.Bytes()))
	if err != nil {
		t.Fatalf("Decode msg2: %v", err)
	}
	if got2.Values["Symbol"] != AsciiValue("AAPL") {
		t.Fatalf("Symbol carry-forward = %v, want AAPL", got2.Values["Symbol"])
	}
	if got2.Values["BidSize"] != UintValue(101) {
		t.Fatalf("BidSize increment = %v, want 101", got2.Values["BidSize"])
	}
	if got2.Values["BidPrice"] != (DecimalValue{Exp: -2, Mnt: 15200}) {
		t.Fatalf("BidPrice delta = %v", got2.Values["BidPrice"])
	}
	if _, present := got2.Values["Levels"]; present {
		t.Fatalf("Levels should be absent (EMPTY) on msg2, got %v", got2.Values["Levels"])
	}
}

func TestDecoderUnknownTemplate(t *testing.T) {
	catalog := NewCatalog(quoteTemplate())
	dec := NewDecoder(catalog)

	b := NewBufferWithRefill(nil, 16, nil)
	if err := (&Pmap{}).encode(b); err != nil {
		t.Fatalf("encode empty pmap: %v", err)
	}
	// pmap above has no bits set at all (n defaults to 1 with the stop
	// bit only), so the decoder has no prior template id to reuse.
	_, err := dec.Decode(NewBuffer(b.Bytes()))
	if err == nil {
		t.Fatalf("expected an error decoding with no known template id")
	}
}

func TestEncoderUnknownTemplate(t *testing.T) {
	catalog := NewCatalog(quoteTemplate())
	enc := NewEncoder(catalog)
	out := NewBufferWithRefill(nil, 16, nil)
	err := enc.Encode(out, &Message{TemplateId: 99, Values: map[string]Value{}})
	if err == nil {
		t.Fatalf("expected ErrUnknownTemplate")
	}
}

func TestSequenceTooLongRejected(t *testing.T) {
	catalog := NewCatalog(quoteTemplate())
	enc := NewEncoder(catalog)

	rows := make(SequenceValue, FastSequenceElements)
	for i := range rows {
		rows[i] = map[string]Value{"Price": DecimalValue{Exp: 0, Mnt: 1}, "Qty": UintValue(1)}
	}
	msg := &Message{
		TemplateId: 1,
		Values: map[string]Value{
			"Symbol":  AsciiValue("AAPL"),
			"BidSize": UintValue(1),
			"Levels":  rows,
		},
	}
	out := NewBufferWithRefill(nil, 1<<20, nil)
	if err := enc.Encode(out, msg); err == nil {
		t.Fatalf("expected SequenceTooLong error for %d elements", len(rows))
	}
}
