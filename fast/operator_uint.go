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

// decodeUint dispatches a TypeUint field's decode by operator, updating
// f in place. pmap is the message's (or sequence element's) shared
// presence map.
func decodeUint(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		v, err := parseUint(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		if d.Mandatory {
			f.uintValue = v
			return nil
		}
		if v == 0 {
			f.State = StateEmpty
		} else {
			f.uintValue = v - 1
		}
		return nil

	case OpCopy:
		if !pmap.IsSet(d.PmapBit) {
			return copyCarryUint(f)
		}
		v, err := parseUint(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		if d.Mandatory {
			f.uintValue = v
			return nil
		}
		if v == 0 {
			f.State = StateEmpty
		} else {
			f.uintValue = v - 1
		}
		return nil

	case OpIncrement:
		if !pmap.IsSet(d.PmapBit) {
			return incrCarryUint(f)
		}
		v, err := parseUint(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		if d.Mandatory {
			f.uintValue = v
			return nil
		}
		if v == 0 {
			f.State = StateEmpty
		} else {
			f.uintValue = v - 1
		}
		return nil

	case OpDelta:
		delta, err := parseInt(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		if delta < 0 {
			f.uintValue -= uint64(-delta)
		} else {
			f.uintValue += uint64(delta)
		}
		if d.Mandatory {
			return nil
		}
		if delta == 0 {
			f.State = StateEmpty
		} else if delta > 0 {
			f.uintValue--
		}
		return nil

	case OpConstant:
		if f.State != StateAssigned {
			f.uintValue = d.ResetUint
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
		return UnsupportedField(d.Name, d.Operator, TypeUint)
	}
}

// copyCarryUint implements the not-pset branch of COPY: adopt the reset
// value the first time, otherwise hold the previous ASSIGNED value, or
// stay EMPTY.
func copyCarryUint(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.uintValue = d.ResetUint
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

// incrCarryUint implements the not-pset branch of INCR: like copyCarryUint
// except an already-ASSIGNED field advances by one.
func incrCarryUint(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.uintValue = d.ResetUint
			return nil
		}
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		f.State = StateEmpty
		return nil
	case StateAssigned:
		f.uintValue++
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

// encodeUint dispatches a TypeUint field's encode by operator, appending
// to b's body and setting pmap bits as the operator requires. previous
// tracking is updated on every path, matching §4.3's "after every
// emission, previous := current" rule.
func encodeUint(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		if err := encodeUintWire(b, f); err != nil {
			return err
		}
	case OpCopy:
		emit := f.State != f.PreviousState || (f.State == StateAssigned && f.uintValue != f.previousUint)
		if emit {
			pmap.Set(d.PmapBit)
			if err := encodeUintWire(b, f); err != nil {
				return err
			}
		}
	case OpIncrement:
		emit := f.State != f.PreviousState || (f.State == StateAssigned && f.uintValue != f.previousUint+1)
		if emit {
			pmap.Set(d.PmapBit)
			if err := encodeUintWire(b, f); err != nil {
				return err
			}
		}
	case OpDelta:
		delta := int64(f.uintValue) - int64(f.previousUint)
		if f.State == StateEmpty {
			if err := transferInt(b, 0); err != nil {
				return err
			}
		} else if !d.Mandatory && delta >= 0 {
			if err := transferInt(b, delta+1); err != nil {
				return err
			}
		} else {
			if err := transferInt(b, delta); err != nil {
				return err
			}
		}
	case OpConstant:
		if !d.Mandatory && f.State == StateAssigned {
			pmap.Set(d.PmapBit)
		}
	default:
		return UnsupportedField(d.Name, d.Operator, TypeUint)
	}
	f.previousUint = f.uintValue
	f.PreviousState = f.State
	return nil
}

func encodeUintWire(b *Buffer, f *Field) error {
	if f.State == StateEmpty {
		return transferUint(b, 0)
	}
	if f.Descriptor.Mandatory {
		return transferUint(b, f.uintValue)
	}
	return transferUint(b, f.uintValue+1)
}
