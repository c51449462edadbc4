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

// decodeInt dispatches a TypeInt field's decode by operator. The null
// augmentation convention for signed integers reads a raw wire value
// directly: 0 means EMPTY, a positive value is decremented by 1, and a
// negative value passes through unchanged.
func decodeInt(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		v, err := parseInt(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.intValue = v
		if d.Mandatory {
			return nil
		}
		if v == 0 {
			f.State = StateEmpty
		} else if v > 0 {
			f.intValue--
		}
		return nil

	case OpCopy:
		if !pmap.IsSet(d.PmapBit) {
			return copyCarryInt(f)
		}
		v, err := parseInt(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.intValue = v
		if d.Mandatory {
			return nil
		}
		if v == 0 {
			f.State = StateEmpty
		} else if v > 0 {
			f.intValue--
		}
		return nil

	case OpIncrement:
		if !pmap.IsSet(d.PmapBit) {
			return incrCarryInt(f)
		}
		v, err := parseInt(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.intValue = v
		if d.Mandatory {
			return nil
		}
		if v == 0 {
			f.State = StateEmpty
		} else if v > 0 {
			f.intValue--
		}
		return nil

	case OpDelta:
		delta, err := parseInt(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.intValue += delta
		if d.Mandatory {
			return nil
		}
		if delta == 0 {
			f.State = StateEmpty
		} else if delta > 0 {
			f.intValue--
		}
		return nil

	case OpConstant:
		if f.State != StateAssigned {
			f.intValue = d.ResetInt
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
		return UnsupportedField(d.Name, d.Operator, TypeInt)
	}
}

func copyCarryInt(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.intValue = d.ResetInt
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

func incrCarryInt(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.intValue = d.ResetInt
			return nil
		}
		if d.Mandatory {
			return MandatoryEmpty(d.Name)
		}
		f.State = StateEmpty
		return nil
	case StateAssigned:
		f.intValue++
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

// encodeInt is encodeUint's signed counterpart.
func encodeInt(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		if err := encodeIntWire(b, f); err != nil {
			return err
		}
	case OpCopy:
		emit := f.State != f.PreviousState || (f.State == StateAssigned && f.intValue != f.previousInt)
		if emit {
			pmap.Set(d.PmapBit)
			if err := encodeIntWire(b, f); err != nil {
				return err
			}
		}
	case OpIncrement:
		emit := f.State != f.PreviousState || (f.State == StateAssigned && f.intValue != f.previousInt+1)
		if emit {
			pmap.Set(d.PmapBit)
			if err := encodeIntWire(b, f); err != nil {
				return err
			}
		}
	case OpDelta:
		delta := f.intValue - f.previousInt
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
		return UnsupportedField(d.Name, d.Operator, TypeInt)
	}
	f.previousInt = f.intValue
	f.PreviousState = f.State
	return nil
}

func encodeIntWire(b *Buffer, f *Field) error {
	if f.State == StateEmpty {
		return transferInt(b, 0)
	}
	if f.Descriptor.Mandatory {
		return transferInt(b, f.intValue)
	}
	if f.intValue >= 0 {
		return transferInt(b, f.intValue+1)
	}
	return transferInt(b, f.intValue)
}
