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

// FieldDescriptor is the immutable, template-level definition of one
// field slot: its name, wire type, operator, flags, and (optional) reset
// value. Descriptors are owned by the Catalog for process lifetime;
// newField produces the mutable per-connection state
// that actually gets decoded into.
type FieldDescriptor struct {
	Name      string
	Type      Type
	Operator  Operator
	Mandatory bool

	// Unicode distinguishes a TypeUnicode field's wire form (length-
	// prefixed raw bytes) from a TypeAscii field's (stop-bit string).
	// Meaningless for other types.
	Unicode bool

	// PmapBit is this field's assigned bit position; valid only when
	// Operator.consumesPmapBit reports true for Mandatory.
	PmapBit int

	HasReset bool
	ResetInt     int64
	ResetUint    uint64
	ResetAscii   string
	ResetUnicode []byte
	ResetDecimal Decimal

	// Element is the field template for one row of a TypeSequence field;
	// nil for every other type.
	Element *Template

	// Length describes the UINT length field preceding a TypeSequence's
	// elements. Nil for every other type.
	Length *FieldDescriptor

	// PmapRequired marks a sequence whose elements each carry their own
	// presence map (FAST_FIELD_FLAGS_PMAPREQ in the original).
	PmapRequired bool
}

// Field is the mutable, per-connection instance of a FieldDescriptor: its
// current value, previous value, reset value, and presence state. State
// persists across every message of the owning Template until the
// connection is torn down or explicitly Reset.
type Field struct {
	Descriptor *FieldDescriptor

	State         State
	PreviousState State

	intValue, previousInt int64
	uintValue, previousUint uint64
	asciiValue, previousAscii string
	unicodeValue, previousUnicode []byte
	decValue, previousDec Decimal

	seq *sequenceInstance
}

func newField(d *FieldDescriptor) *Field {
	f := &Field{Descriptor: d, State: StateUndefined, PreviousState: StateUndefined}
	if d.Type == TypeSequence {
		f.seq = newSequenceInstance(d)
	}
	return f
}

// clone produces an independent copy of f, carrying its current mutable
// state, for binding into a freshly-cloned per-connection Template.
func (f *Field) clone() *Field {
	nf := *f
	if f.seq != nil {
		nf.seq = f.seq.clone()
	}
	return &nf
}

// reset restores a field to its declared reset value (or UNDEFINED if it
// has none), matching fast_message_reset in the original: this is used
// when a caller wants to start a template instance over, e.g. after a
// resynchronization, without discarding the whole connection.
func (f *Field) reset() {
	f.State = StateUndefined
	f.PreviousState = StateUndefined
	if f.seq != nil {
		if f.seq.length != nil {
			f.seq.length.reset()
		}
		for _, wf := range f.seq.working {
			wf.reset()
		}
		f.seq.elements = nil
	}
	if !f.Descriptor.HasReset {
		return
	}
	switch f.Descriptor.Type {
	case TypeInt:
		f.intValue, f.previousInt = f.Descriptor.ResetInt, f.Descriptor.ResetInt
	case TypeUint:
		f.uintValue, f.previousUint = f.Descriptor.ResetUint, f.Descriptor.ResetUint
	case TypeAscii:
		f.asciiValue, f.previousAscii = f.Descriptor.ResetAscii, f.Descriptor.ResetAscii
	case TypeUnicode:
		f.unicodeValue = append([]byte(nil), f.Descriptor.ResetUnicode...)
		f.previousUnicode = append([]byte(nil), f.Descriptor.ResetUnicode...)
	case TypeDecimal:
		f.decValue, f.previousDec = f.Descriptor.ResetDecimal, f.Descriptor.ResetDecimal
	}
}

// Value returns the field's current value as a discriminated Value, or
// nil if the field is not ASSIGNED.
func (f *Field) Value() Value {
	if f.State != StateAssigned {
		return nil
	}
	switch f.Descriptor.Type {
	case TypeInt:
		return IntValue(f.intValue)
	case TypeUint:
		return UintValue(f.uintValue)
	case TypeAscii:
		return AsciiValue(f.asciiValue)
	case TypeUnicode:
		return UnicodeValue(f.unicodeValue)
	case TypeDecimal:
		return DecimalValue(f.decValue)
	case TypeSequence:
		return f.seq.value()
	default:
		return nil
	}
}

// SetValue assigns v onto the field ahead of an Encode call, marking the
// field ASSIGNED. It panics if v's type disagrees with the field's
// declared Type, mirroring the original's assumption that the caller
// builds well-typed messages.
func (f *Field) SetValue(v Value) {
	f.State = StateAssigned
	switch val := v.(type) {
	case IntValue:
		f.intValue = int64(val)
	case UintValue:
		f.uintValue = uint64(val)
	case AsciiValue:
		f.asciiValue = string(val)
	case UnicodeValue:
		f.unicodeValue = []byte(val)
	case DecimalValue:
		f.decValue = Decimal(val)
	case SequenceValue:
		f.seq.setValue(val)
	default:
		panic("fast: SetValue type mismatch")
	}
}

// SetEmpty marks an optional field EMPTY ahead of an Encode call. It is a
// no-op (the caller's bug, not ours, to surface) if called on a mandatory
// field descriptor.
func (f *Field) SetEmpty() {
	if f.Descriptor.Mandatory {
		return
	}
	f.State = StateEmpty
}
