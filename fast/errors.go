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

import (
	"errors"
	"fmt"
)

// ErrGarbled is the single sentinel error surfaced by every public decode
// and encode entry point on wire-syntax violations. Callers should test
// against it with errors.Is; the wrapped detail is for humans only.
var ErrGarbled = errors.New("fast: garbled message")

var (
	ErrUnknownTemplate  error = errors.New("fast: unknown template id")
	ErrNestedSequence   error = errors.New("fast: nested sequences are not supported")
	ErrSequenceTooLong  error = errors.New("fast: sequence length exceeds configured limit")
	ErrDecimalExponent  error = errors.New("fast: decimal exponent out of range")
	ErrUnsupportedField error = errors.New("fast: operator not valid for field type")
	ErrMandatoryEmpty   error = errors.New("fast: mandatory field cannot be empty")
	ErrBufferOverflow   error = errors.New("fast: insufficient buffer capacity to encode")
	ErrPmapOverflow     error = errors.New("fast: presence map exceeds maximum byte length")
	ErrStopBitMissing   error = errors.New("fast: no stop bit within maximum group span")
)

// garbled wraps any of the sentinels above together with extra context,
// while guaranteeing errors.Is(result, ErrGarbled) succeeds regardless of
// which specific sentinel triggered it.
func garbled(cause error, format string, args ...interface{}) error {
	detail := fmt.Errorf(format, args...)
	return fmt.Errorf("%w: %s: %w", ErrGarbled, detail, cause)
}

func UnknownTemplate(tid uint32) error {
	return garbled(ErrUnknownTemplate, "template id %d", tid)
}

func NestedSequence(fieldName string) error {
	return garbled(ErrNestedSequence, "field %q", fieldName)
}

func SequenceTooLong(fieldName string, length uint64, limit uint64) error {
	return garbled(ErrSequenceTooLong, "field %q length %d exceeds limit %d", fieldName, length, limit)
}

func DecimalExponent(fieldName string, exp int64) error {
	return garbled(ErrDecimalExponent, "field %q exponent %d", fieldName, exp)
}

func UnsupportedField(fieldName string, op Operator, typ Type) error {
	return garbled(ErrUnsupportedField, "field %q: operator %s not valid for type %s", fieldName, op, typ)
}

func MandatoryEmpty(fieldName string) error {
	return garbled(ErrMandatoryEmpty, "field %q", fieldName)
}

func BufferOverflow() error {
	return garbled(ErrBufferOverflow, "no room left to encode")
}

func PmapOverflow() error {
	return garbled(ErrPmapOverflow, "presence map exceeds %d bytes", MaxPmapBytes)
}

func StopBitMissing() error {
	return garbled(ErrStopBitMissing, "no stop bit within %d groups", maxStopBitGroups)
}
