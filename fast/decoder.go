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

import "time"

// Decoder holds one connection's decode-side state: its Catalog and the
// per-template Instances that carry cross-message COPY/INCR/DELTA
// history. A Decoder is not safe for concurrent use; callers serialize
// decodes the same way a FAST feed is itself a single ordered byte
// stream.
type Decoder struct {
	catalog   *Catalog
	instances map[uint32]*Instance
	lastTid   uint32
	haveTid   bool
}

// NewDecoder builds a Decoder bound to catalog. Every template's Instance
// is created lazily, on first use, so a catalog with templates that never
// appear on the wire costs nothing.
func NewDecoder(catalog *Catalog) *Decoder {
	return &Decoder{catalog: catalog, instances: make(map[uint32]*Instance)}
}

// Decode reads exactly one message from b: a presence map, an optional
// template id (bit 0 of the pmap; when unset, the previous message's id
// is reused), and then the template's fields in declaration order. It
// returns ErrUnknownTemplate wrapped as a garbled error if the template
// id is not in the catalog, and otherwise the first garbled error any
// field decode surfaces.
func (d *Decoder) Decode(b *Buffer) (*Message, error) {
	start := time.Now()
	msg, err := d.decode(b)
	DecodeDurationMicroseconds.Observe(float64(time.Since(start).Microseconds()))
	if err != nil {
		GarbledTotal.Inc()
		return nil, err
	}
	MessagesDecodedTotal.WithLabelValues(msg.TemplateName).Inc()
	return msg, nil
}

func (d *Decoder) decode(b *Buffer) (*Message, error) {
	pmap, err := parsePmap(b)
	if err != nil {
		return nil, err
	}

	var tid uint32
	if pmap.IsSet(0) {
		v, err := parseUint(b)
		if err != nil {
			return nil, err
		}
		tid = uint32(v)
		d.lastTid = tid
		d.haveTid = true
	} else {
		if !d.haveTid {
			return nil, UnknownTemplate(0)
		}
		tid = d.lastTid
	}

	tmpl, ok := d.catalog.Template(tid)
	if !ok {
		return nil, UnknownTemplate(tid)
	}

	inst, ok := d.instances[tid]
	if !ok {
		inst = tmpl.NewInstance()
		d.instances[tid] = inst
	}

	for _, f := range inst.Fields {
		if err := decodeField(b, pmap, f); err != nil {
			return nil, err
		}
	}

	return messageFromInstance(inst), nil
}

// Reset discards a template's cross-message state, forcing its next
// decode to behave as if the connection had just been established. Used
// after an out-of-band resynchronization signal.
func (d *Decoder) Reset(tid uint32) {
	if inst, ok := d.instances[tid]; ok {
		inst.Reset()
	}
}
