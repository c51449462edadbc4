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

// encoderScratchCapacity bounds the per-message scratch buffer an Encoder
// assembles a message body into before the final pmap ‖ body gather-write.
const encoderScratchCapacity = 65536

// Encoder mirrors Decoder on the write side: one Catalog and one set of
// per-template Instances carrying cross-message history. Unlike Decoder,
// which may omit a repeated template id on the read side because some
// remote sender chose to, Encoder never omits it: every message it
// produces carries its own template id, so a freshly built or restored
// Decoder can always resynchronize off a single message.
type Encoder struct {
	catalog   *Catalog
	instances map[uint32]*Instance
}

// NewEncoder builds an Encoder bound to catalog.
func NewEncoder(catalog *Catalog) *Encoder {
	return &Encoder{catalog: catalog, instances: make(map[uint32]*Instance)}
}

// Encode appends one message's wire form to out: a pmap with bit 0 set,
// the template id, and the template's fields in declaration order. It
// returns ErrUnknownTemplate if msg.TemplateId is not in the catalog.
func (e *Encoder) Encode(out *Buffer, msg *Message) error {
	tmpl, ok := e.catalog.Template(msg.TemplateId)
	if !ok {
		return UnknownTemplate(msg.TemplateId)
	}

	inst, ok := e.instances[msg.TemplateId]
	if !ok {
		inst = tmpl.NewInstance()
		e.instances[msg.TemplateId] = inst
	}
	applyToInstance(inst, msg)

	pmap := &Pmap{}
	pmap.Set(0)

	scratch := NewBufferWithRefill(nil, encoderScratchCapacity, nil)
	if err := transferUint(scratch, uint64(msg.TemplateId)); err != nil {
		return err
	}
	for _, f := range inst.Fields {
		if err := encodeField(scratch, pmap, f); err != nil {
			return err
		}
	}

	if err := pmap.encode(out); err != nil {
		return err
	}
	if err := out.PutBytes(scratch.Bytes()); err != nil {
		return err
	}

	MessagesEncodedTotal.WithLabelValues(tmpl.Name).Inc()
	return nil
}

// Reset discards a template's cross-message state, matching Decoder.Reset.
func (e *Encoder) Reset(tid uint32) {
	if inst, ok := e.instances[tid]; ok {
		inst.Reset()
	}
}
