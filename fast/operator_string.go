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

// decodeString dispatches to the ASCII or Unicode decoder depending on
// the field's declared flag, matching fast_decode_string's branch in the
// original.
func decodeString(b *Buffer, pmap *Pmap, f *Field) error {
	if f.Descriptor.Unicode {
		return decodeUnicode(b, pmap, f)
	}
	return decodeAscii(b, pmap, f)
}

func encodeString(b *Buffer, pmap *Pmap, f *Field) error {
	if f.Descriptor.Unicode {
		return encodeUnicode(b, pmap, f)
	}
	return encodeAscii(b, pmap, f)
}

// decodeAscii: only NONE, COPY, and CONSTANT are valid operators; INCR
// and DELTA on ASCII are garbled in current scope.
func decodeAscii(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		s, err := parseAsciiString(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.asciiValue = s
		if !d.Mandatory && len(s) == 1 && s[0] == 0 {
			// parseAsciiString strips the stop bit; a single NUL byte
			// with length 1 is the null-string code point (0x80 on the
			// wire), reported here as state EMPTY for optional fields.
			f.State = StateEmpty
		}
		return nil

	case OpCopy:
		if !pmap.IsSet(d.PmapBit) {
			return copyCarryAscii(f)
		}
		s, err := parseAsciiString(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.asciiValue = s
		if !d.Mandatory && len(s) == 1 && s[0] == 0 {
			f.State = StateEmpty
		}
		return nil

	case OpIncrement, OpDelta:
		return UnsupportedField(d.Name, d.Operator, TypeAscii)

	case OpConstant:
		if f.State != StateAssigned {
			f.asciiValue = d.ResetAscii
		}
		f.State = StateAssigned
		if d.Mandatory {
			return nil
		}
		if !pmap.IsSet(d.PmapBit) {
			f.State = StateEmpty
		}
		return nil

	default:
		return UnsupportedField(d.Name, d.Operator, TypeAscii)
	}
}

func copyCarryAscii(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.asciiValue = d.ResetAscii
			return nil
		}
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		f.State = StateEmpty
		return nil
	case StateAssigned:
		return nil
	case StateEmpty:
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		return nil
	default:
		return nil
	}
}

func encodeAscii(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		return encodeAsciiWire(b, f)
	case OpCopy:
		emit := f.State != f.PreviousState || (f.State == StateAssigned && f.asciiValue != f.previousAscii)
		if emit {
			pmap.Set(d.PmapBit)
			if err := encodeAsciiWire(b, f); err != nil {
				return err
			}
		}
	case OpConstant:
		if !d.Mandatory && f.State == StateAssigned {
			pmap.Set(d.PmapBit)
		}
	default:
		return UnsupportedField(d.Name, d.Operator, TypeAscii)
	}
	f.previousAscii = f.asciiValue
	f.PreviousState = f.State
	return nil
}

func encodeAsciiWire(b *Buffer, f *Field) error {
	if f.State == StateEmpty {
		return transferNullAscii(b)
	}
	return transferAsciiString(b, f.asciiValue)
}

// decodeUnicode reads a length-prefixed Unicode body: parseUint for the
// length (with the same null augmentation as scalar NONE/COPY), then
// exactly that many raw bytes.
func decodeUnicode(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		return decodeUnicodeWire(b, f)
	case OpCopy:
		if !pmap.IsSet(d.PmapBit) {
			return copyCarryUnicode(f)
		}
		return decodeUnicodeWire(b, f)
	case OpIncrement, OpDelta:
		return UnsupportedField(d.Name, d.Operator, TypeUnicode)
	case OpConstant:
		if f.State != StateAssigned {
			f.unicodeValue = append([]byte(nil), d.ResetUnicode...)
		}
		f.State = StateAssigned
		if d.Mandatory {
			return nil
		}
		if !pmap.IsSet(d.PmapBit) {
			f.State = StateEmpty
		}
		return nil
	default:
		return UnsupportedField(d.Name, d.Operator, TypeUnicode)
	}
}

func decodeUnicodeWire(b *Buffer, f *Field) error {
	d := f.Descriptor
	length, err := parseUint(b)
	if err != nil {
		return err
	}
	f.State = StateAssigned
	if !d.Mandatory {
		if length == 0 {
			f.State = StateEmpty
			f.unicodeValue = nil
			return nil
		}
		length--
	}
	body, err := parseBytes(b, int(length))
	if err != nil {
		return err
	}
	f.unicodeValue = body
	return nil
}

func copyCarryUnicode(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.unicodeValue = append([]byte(nil), d.ResetUnicode...)
			return nil
		}
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		f.State = StateEmpty
		return nil
	case StateAssigned:
		return nil
	case StateEmpty:
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		return nil
	default:
		return nil
	}
}

func encodeUnicode(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		if err := encodeUnicodeWire(b, f); err != nil {
			return err
		}
	case OpCopy:
		changed := f.State != f.PreviousState ||
			(f.State == StateAssigned && string(f.unicodeValue) != string(f.previousUnicode))
		if changed {
			pmap.Set(d.PmapBit)
			if err := encodeUnicodeWire(b, f); err != nil {
				return err
			}
		}
	case OpConstant:
		if !d.Mandatory && f.State == StateAssigned {
			pmap.Set(d.PmapBit)
		}
	default:
		return UnsupportedField(d.Name, d.Operator, TypeUnicode)
	}
	f.previousUnicode = append([]byte(nil), f.unicodeValue...)
	f.PreviousState = f.State
	return nil
}

func encodeUnicodeWire(b *Buffer, f *Field) error {
	d := f.Descriptor
	if f.State == StateEmpty {
		return transferUint(b, 0)
	}
	n := uint64(len(f.unicodeValue))
	if !d.Mandatory {
		n++
	}
	if err := transferUint(b, n); err != nil {
		return err
	}
	return b.PutBytes(f.unicodeValue)
}
