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

// sequenceScratchCapacity bounds the per-row scratch buffer used to build
// a PMAPREQ sequence element's body ahead of its own element pmap.
const sequenceScratchCapacity = 4096

// decodeSequence reads a TypeSequence field: a UINT length (carrying the
// same operator and null-augmentation rules as any other UINT field, on
// the enclosing pmap), followed by that many element rows. A row is
// dispatched field by field against the persistent working state in
// f.seq, optionally behind its own fresh per-row pmap when the
// descriptor requires one. Only one level of sequence nesting is
// supported; an element field itself declared as TypeSequence is
// rejected as garbled, matching the one-level-only restriction.
func decodeSequence(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	if d.Length == nil || f.seq == nil {
		return UnsupportedField(d.Name, d.Operator, TypeSequence)
	}

	if err := decodeField(b, pmap, f.seq.length); err != nil {
		return err
	}

	if f.seq.length.State == StateEmpty {
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		f.State = StateEmpty
		f.seq.elements = nil
		return nil
	}

	count := f.seq.length.uintValue
	if count >= FastSequenceElements {
		return SequenceTooLong(d.Name, count, FastSequenceElements)
	}
	f.State = StateAssigned

	elements := make([]map[string]Value, 0, count)
	for i := uint64(0); i < count; i++ {
		elementPmap := pmap
		if d.PmapRequired {
			p, err := parsePmap(b)
			if err != nil {
				return err
			}
			elementPmap = p
		}

		row := make(map[string]Value, len(f.seq.working))
		for _, wf := range f.seq.working {
			if wf.Descriptor.Type == TypeSequence {
				return NestedSequence(d.Name)
			}
			if err := decodeField(b, elementPmap, wf); err != nil {
				return err
			}
			row[wf.Descriptor.Name] = wf.Value()
		}
		elements = append(elements, row)
	}
	f.seq.elements = elements
	return nil
}

// encodeSequence is decodeSequence's inverse. Element rows are assembled
// into a scratch buffer so that a PMAPREQ row's own pmap can be written
// ahead of its field bytes, the same gather-write shape the top-level
// message encoder uses for the message pmap.
func encodeSequence(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	if d.Length == nil || f.seq == nil {
		return UnsupportedField(d.Name, d.Operator, TypeSequence)
	}

	if f.State == StateEmpty {
		f.seq.length.SetEmpty()
		return encodeField(b, pmap, f.seq.length)
	}

	count := uint64(len(f.seq.elements))
	if count >= FastSequenceElements {
		return SequenceTooLong(d.Name, count, FastSequenceElements)
	}

	f.seq.length.SetValue(UintValue(count))
	if err := encodeField(b, pmap, f.seq.length); err != nil {
		return err
	}

	for _, row := range f.seq.elements {
		for _, wf := range f.seq.working {
			if v, ok := row[wf.Descriptor.Name]; ok && v != nil {
				wf.SetValue(v)
			} else {
				wf.SetEmpty()
			}
		}

		if !d.PmapRequired {
			for _, wf := range f.seq.working {
				if err := encodeField(b, pmap, wf); err != nil {
					return err
				}
			}
			continue
		}

		rowPmap := &Pmap{}
		scratch := NewBufferWithRefill(nil, sequenceScratchCapacity, nil)
		for _, wf := range f.seq.working {
			if err := encodeField(scratch, rowPmap, wf); err != nil {
				return err
			}
		}
		if err := rowPmap.encode(b); err != nil {
			return err
		}
		if err := b.PutBytes(scratch.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
