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

// FieldSnapshot is the JSON-marshalable form of one Field's cross-message
// operator state: the COPY/INCREMENT/DELTA history that makes FAST a
// compression scheme instead of a binary FIX. A snapshot taken after
// decoding message N and restored into a freshly-built Instance makes
// that Instance behave, on message N+1, exactly as the original
// connection would have.
type FieldSnapshot struct {
	State         State `json:"state"`
	PreviousState State `json:"previousState"`

	Int         int64  `json:"int,omitempty"`
	PreviousInt int64  `json:"previousInt,omitempty"`
	Uint         uint64 `json:"uint,omitempty"`
	PreviousUint uint64 `json:"previousUint,omitempty"`

	Ascii         string `json:"ascii,omitempty"`
	PreviousAscii string `json:"previousAscii,omitempty"`

	Unicode         []byte `json:"unicode,omitempty"`
	PreviousUnicode []byte `json:"previousUnicode,omitempty"`

	DecExp         int64 `json:"decExp,omitempty"`
	PreviousDecExp int64 `json:"previousDecExp,omitempty"`
	DecMnt         int64 `json:"decMnt,omitempty"`
	PreviousDecMnt int64 `json:"previousDecMnt,omitempty"`

	// Length and Working carry a TypeSequence field's own persistent
	// operator state: the element-count field and each element field's
	// slot, the same way they live on sequenceInstance. The decoded rows
	// themselves (sequenceInstance.elements) are message-local and are
	// not part of the checkpoint.
	Length  *FieldSnapshot  `json:"length,omitempty"`
	Working []FieldSnapshot `json:"working,omitempty"`
}

func (f *Field) snapshot() FieldSnapshot {
	s := FieldSnapshot{State: f.State, PreviousState: f.PreviousState}
	switch f.Descriptor.Type {
	case TypeInt:
		s.Int, s.PreviousInt = f.intValue, f.previousInt
	case TypeUint:
		s.Uint, s.PreviousUint = f.uintValue, f.previousUint
	case TypeAscii:
		s.Ascii, s.PreviousAscii = f.asciiValue, f.previousAscii
	case TypeUnicode:
		s.Unicode = append([]byte(nil), f.unicodeValue...)
		s.PreviousUnicode = append([]byte(nil), f.previousUnicode...)
	case TypeDecimal:
		s.DecExp, s.PreviousDecExp = f.decValue.Exp, f.previousDec.Exp
		s.DecMnt, s.PreviousDecMnt = f.decValue.Mnt, f.previousDec.Mnt
	case TypeSequence:
		if f.seq.length != nil {
			ls := f.seq.length.snapshot()
			s.Length = &ls
		}
		if len(f.seq.working) > 0 {
			s.Working = make([]FieldSnapshot, len(f.seq.working))
			for i, wf := range f.seq.working {
				s.Working[i] = wf.snapshot()
			}
		}
	}
	return s
}

func (f *Field) restore(s FieldSnapshot) {
	f.State, f.PreviousState = s.State, s.PreviousState
	switch f.Descriptor.Type {
	case TypeInt:
		f.intValue, f.previousInt = s.Int, s.PreviousInt
	case TypeUint:
		f.uintValue, f.previousUint = s.Uint, s.PreviousUint
	case TypeAscii:
		f.asciiValue, f.previousAscii = s.Ascii, s.PreviousAscii
	case TypeUnicode:
		f.unicodeValue = append([]byte(nil), s.Unicode...)
		f.previousUnicode = append([]byte(nil), s.PreviousUnicode...)
	case TypeDecimal:
		f.decValue = Decimal{Exp: s.DecExp, Mnt: s.DecMnt}
		f.previousDec = Decimal{Exp: s.PreviousDecExp, Mnt: s.PreviousDecMnt}
	case TypeSequence:
		if s.Length != nil && f.seq.length != nil {
			f.seq.length.restore(*s.Length)
		}
		for i := range s.Working {
			if i < len(f.seq.working) {
				f.seq.working[i].restore(s.Working[i])
			}
		}
	}
}

// InstanceSnapshot is a whole Instance's cross-message operator state,
// keyed by field name, suitable for persisting between connections (e.g.
// into an external store on disconnect and back out on reconnect).
type InstanceSnapshot map[string]FieldSnapshot

// Snapshot captures inst's current cross-message operator state.
func (inst *Instance) Snapshot() InstanceSnapshot {
	snap := make(InstanceSnapshot, len(inst.Fields))
	for _, f := range inst.Fields {
		snap[f.Descriptor.Name] = f.snapshot()
	}
	return snap
}

// Restore overwrites inst's field state with a previously captured
// snapshot. A field present in the Template but absent from snap is left
// untouched.
func (inst *Instance) Restore(snap InstanceSnapshot) {
	for _, f := range inst.Fields {
		if s, ok := snap[f.Descriptor.Name]; ok {
			f.restore(s)
		}
	}
}

// Checkpoint captures the current cross-message state of every template
// instance a Decoder has touched so far, keyed by template id. Callers
// typically persist this on disconnect and hand it back to Restore after
// a reconnecting session re-establishes the same logical stream.
func (d *Decoder) Checkpoint() map[uint32]InstanceSnapshot {
	out := make(map[uint32]InstanceSnapshot, len(d.instances))
	for tid, inst := range d.instances {
		out[tid] = inst.Snapshot()
	}
	return out
}

// Restore rebuilds this Decoder's per-template instances from a prior
// Checkpoint, lazily constructing any Instance the checkpoint names that
// this Decoder has not yet seen on the wire.
func (d *Decoder) Restore(snap map[uint32]InstanceSnapshot) {
	for tid, instSnap := range snap {
		inst, ok := d.instances[tid]
		if !ok {
			tmpl, ok := d.catalog.Template(tid)
			if !ok {
				continue
			}
			inst = tmpl.NewInstance()
			d.instances[tid] = inst
		}
		inst.Restore(instSnap)
	}
}

// DecoderCursor is a Decoder's session-level tid-omission state: which
// template id a pmap with bit 0 unset currently refers to. It is separate
// from InstanceSnapshot because it describes the connection's wire
// position, not any one template's field history. A Decoder rebuilt after
// a reconnect must have its cursor restored before decoding a message
// whose pmap omits the template id, or it fails with UnknownTemplate(0)
// even though the remote encoder considers the id still in scope.
type DecoderCursor struct {
	LastTemplateId uint32 `json:"lastTemplateId"`
	HaveTemplateId bool   `json:"haveTemplateId"`
}

// Cursor captures d's current tid-omission state for persisting alongside
// a Checkpoint.
func (d *Decoder) Cursor() DecoderCursor {
	return DecoderCursor{LastTemplateId: d.lastTid, HaveTemplateId: d.haveTid}
}

// RestoreCursor rebuilds d's tid-omission state from a prior Cursor. Call
// it together with Restore when resuming a session a remote encoder never
// itself reset, since that encoder may still omit a template id that only
// a correctly seeded cursor lets this Decoder resolve.
func (d *Decoder) RestoreCursor(c DecoderCursor) {
	d.lastTid = c.LastTemplateId
	d.haveTid = c.HaveTemplateId
}

// Checkpoint mirrors Decoder.Checkpoint on the write side.
func (e *Encoder) Checkpoint() map[uint32]InstanceSnapshot {
	out := make(map[uint32]InstanceSnapshot, len(e.instances))
	for tid, inst := range e.instances {
		out[tid] = inst.Snapshot()
	}
	return out
}

// Restore mirrors Decoder.Restore on the write side.
func (e *Encoder) Restore(snap map[uint32]InstanceSnapshot) {
	for tid, instSnap := range snap {
		inst, ok := e.instances[tid]
		if !ok {
			tmpl, ok := e.catalog.Template(tid)
			if !ok {
				continue
			}
			inst = tmpl.NewInstance()
			e.instances[tid] = inst
		}
		inst.Restore(instSnap)
	}
}
