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

// decodeDecimal dispatches a TypeDecimal field's decode. INCR is never
// applicable to decimals. Decimals are never normalized: exp and mnt are
// carried and compared as a raw pair.
func decodeDecimal(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		return decodeDecimalWire(b, f)

	case OpCopy:
		if !pmap.IsSet(d.PmapBit) {
			return copyCarryDecimal(f)
		}
		return decodeDecimalWire(b, f)

	case OpIncrement:
		return UnsupportedField(d.Name, d.Operator, TypeDecimal)

	case OpDelta:
		expDelta, err := parseInt(b)
		if err != nil {
			return err
		}
		f.State = StateAssigned
		f.decValue.Exp += expDelta
		if !d.Mandatory {
			if expDelta == 0 {
				f.State = StateEmpty
				return nil
			}
			if expDelta > 0 {
				f.decValue.Exp--
			}
		}
		if !f.decValue.validExponent() {
			return DecimalExponent(d.Name, f.decValue.Exp)
		}
		mntDelta, err := parseInt(b)
		if err != nil {
			return err
		}
		f.decValue.Mnt += mntDelta
		return nil

	case OpConstant:
		if f.State != StateAssigned {
			f.decValue = d.ResetDecimal
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
		return UnsupportedField(d.Name, d.Operator, TypeDecimal)
	}
}

func decodeDecimalWire(b *Buffer, f *Field) error {
	d := f.Descriptor
	exp, err := parseInt(b)
	if err != nil {
		return err
	}
	f.State = StateAssigned
	if !d.Mandatory {
		if exp == 0 {
			f.State = StateEmpty
			return nil
		}
		if exp > 0 {
			exp--
		}
	}
	if exp > decimalExpMax || exp < decimalExpMin {
		return DecimalExponent(d.Name, exp)
	}
	mnt, err := parseInt(b)
	if err != nil {
		return err
	}
	f.decValue = Decimal{Exp: exp, Mnt: mnt}
	return nil
}

func copyCarryDecimal(f *Field) error {
	d := f.Descriptor
	switch f.State {
	case StateUndefined:
		if d.HasReset {
			f.State = StateAssigned
			f.decValue = d.ResetDecimal
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

// encodeDecimal is decodeDecimal's inverse.
func encodeDecimal(b *Buffer, pmap *Pmap, f *Field) error {
	d := f.Descriptor
	switch d.Operator {
	case OpNone:
		if err := encodeDecimalWire(b, f); err != nil {
			return err
		}
	case OpCopy:
		emit := f.State != f.PreviousState || (f.State == StateAssigned && f.decValue != f.previousDec)
		if emit {
			pmap.Set(d.PmapBit)
			if err := encodeDecimalWire(b, f); err != nil {
				return err
			}
		}
	case OpDelta:
		if f.State == StateEmpty {
			if err := transferInt(b, 0); err != nil {
				return err
			}
		} else {
			expDelta := f.decValue.Exp - f.previousDec.Exp
			if !d.Mandatory && expDelta >= 0 {
				expDelta++
			}
			if err := transferInt(b, expDelta); err != nil {
				return err
			}
			mntDelta := f.decValue.Mnt - f.previousDec.Mnt
			if err := transferInt(b, mntDelta); err != nil {
				return err
			}
		}
	case OpConstant:
		if !d.Mandatory && f.State == StateAssigned {
			pmap.Set(d.PmapBit)
		}
	default:
		return UnsupportedField(d.Name, d.Operator, TypeDecimal)
	}
	f.previousDec = f.decValue
	f.PreviousState = f.State
	return nil
}

func encodeDecimalWire(b *Buffer, f *Field) error {
	d := f.Descriptor
	if f.State == StateEmpty {
		return transferInt(b, 0)
	}
	exp := f.decValue.Exp
	if !d.Mandatory && exp >= 0 {
		exp++
	}
	if err := transferInt(b, exp); err != nil {
		return err
	}
	return transferInt(b, f.decValue.Mnt)
}
