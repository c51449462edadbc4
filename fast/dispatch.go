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

// decodeField dispatches a single field decode by its descriptor's Type.
// It is the one place Decoder, and the sequence element loop, need to
// know about the full set of wire types.
func decodeField(b *Buffer, pmap *Pmap, f *Field) error {
	switch f.Descriptor.Type {
	case TypeInt:
		return decodeInt(b, pmap, f)
	case TypeUint:
		return decodeUint(b, pmap, f)
	case TypeAscii, TypeUnicode:
		return decodeString(b, pmap, f)
	case TypeDecimal:
		return decodeDecimal(b, pmap, f)
	case TypeSequence:
		return decodeSequence(b, pmap, f)
	default:
		return UnsupportedField(f.Descriptor.Name, f.Descriptor.Operator, f.Descriptor.Type)
	}
}

// encodeField is decodeField's inverse.
func encodeField(b *Buffer, pmap *Pmap, f *Field) error {
	switch f.Descriptor.Type {
	case TypeInt:
		return encodeInt(b, pmap, f)
	case TypeUint:
		return encodeUint(b, pmap, f)
	case TypeAscii, TypeUnicode:
		return encodeString(b, pmap, f)
	case TypeDecimal:
		return encodeDecimal(b, pmap, f)
	case TypeSequence:
		return encodeSequence(b, pmap, f)
	default:
		return UnsupportedField(f.Descriptor.Name, f.Descriptor.Operator, f.Descriptor.Type)
	}
}
