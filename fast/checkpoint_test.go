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

func heartbeatTemplate() *Template {
	return &Template{
		Id:   5,
		Name: "Heartbeat",
		Fields: []*FieldDescriptor{
			{Name: "Seq", Type: TypeUint, Operator: OpNone, Mandatory: true},
		},
	}
}

// TestDecoderCursorSurvivesRestore covers the reconnect path: a Decoder
// rebuilt from a Checkpoint, with its Cursor separately restored, must
// still resolve a message whose pmap omits the template id.
func TestDecoderCursorSurvivesRestore(t *testing.T) {
	catalog := NewCatalog(heartbeatTemplate())
	enc := NewEncoder(catalog)
	dec := NewDecoder(catalog)

	msg1 := &Message{TemplateId: 5, Values: map[string]Value{"Seq": UintValue(1)}}
	out1 := NewBufferWithRefill(nil, 64, nil)
	if err := enc.Encode(out1, msg1); err != nil {
		t.Fatalf("Encode msg1: %v", err)
	}
	if _, err := dec.Decode(NewBuffer(out1.Bytes())); err != nil {
		t.Fatalf("Decode msg1: %v", err)
	}

	checkpoint := dec.Checkpoint()
	cursor := dec.Cursor()

	// Simulate a reconnect: a brand new Decoder with the per-template
	// history restored but, if the cursor were forgotten, no notion of
	// which template id a tid-omitting pmap refers to.
	revived := NewDecoder(catalog)
	revived.Restore(checkpoint)
	revived.RestoreCursor(cursor)

	// Message 2 omits the template id on the wire the way a remote
	// encoder that never reset its own session-level state would.
	pmap := &Pmap{}
	scratch := NewBufferWithRefill(nil, 64, nil)
	if err := transferUint(scratch, 2); err != nil {
		t.Fatalf("encode Seq: %v", err)
	}
	out2 := NewBufferWithRefill(nil, 64, nil)
	if err := pmap.encode(out2); err != nil {
		t.Fatalf("encode pmap: %v", err)
	}
	if err := out2.PutBytes(scratch.Bytes()); err != nil {
		t.Fatalf("assemble msg2: %v", err)
	}

	got, err := revived.Decode(NewBuffer(out2.Bytes()))
	if err != nil {
		t.Fatalf("Decode msg2 after restore: %v", err)
	}
	if got.TemplateId != 5 {
		t.Fatalf("TemplateId = %d, want 5 (resolved via restored cursor)", got.TemplateId)
	}
	if got.Values["Seq"] != UintValue(2) {
		t.Fatalf("Seq = %v, want 2", got.Values["Seq"])
	}
}

// TestDecoderWithoutRestoredCursorRejectsOmittedTid covers a Decoder that
// has never had a Cursor set: a tid-omitting pmap has nothing to resolve
// against.
func TestDecoderWithoutRestoredCursorRejectsOmittedTid(t *testing.T) {
	catalog := NewCatalog(quoteTemplate())
	dec := NewDecoder(catalog)

	pmap := &Pmap{}
	out := NewBufferWithRefill(nil, 16, nil)
	if err := pmap.encode(out); err != nil {
		t.Fatalf("encode empty pmap: %v", err)
	}
	if _, err := dec.Decode(NewBuffer(out.Bytes())); err == nil {
		t.Fatalf("expected UnknownTemplate(0) with no cursor ever set")
	}
}
