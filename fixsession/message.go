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

// Package fixsession implements the minimal subset of FIX tag=value
// session framing needed to exercise a demo dialer alongside the FAST
// codec: BeginString/BodyLength/MsgType/CheckSum, SOH-delimited fields,
// mod-256 checksum. It is a thin, unmodified collaborator, not a
// redesign target; FAST payloads are never carried inside it.
package fixsession

import (
	"bytes"
	"fmt"
	"strconv"
)

// SOH is the FIX field delimiter, ASCII 0x01.
const SOH = 0x01

// Field is one tag=value pair in declaration order.
type Field struct {
	Tag   int
	Value string
}

// Message is a FIX message's BeginString, MsgType and ordered body fields.
// BodyLength and CheckSum are not stored here: Encode computes them and
// writes them around the body itself.
type Message struct {
	BeginString string
	MsgType     string
	Fields      []Field
}

// Common tag numbers used by the fields this package computes itself.
const (
	TagBeginString = 8
	TagBodyLength  = 9
	TagMsgType     = 35
	TagCheckSum    = 10
)

// Encode renders m into its wire form. BodyLength covers everything after
// the BodyLength field itself up to and including the delimiter before
// CheckSum; CheckSum is the mod-256 sum of every preceding byte,
// formatted as three zero-padded digits, per the FIX specification.
func (m Message) Encode() []byte {
	var body bytes.Buffer
	writeField(&body, TagMsgType, m.MsgType)
	for _, f := range m.Fields {
		writeField(&body, f.Tag, f.Value)
	}

	var out bytes.Buffer
	writeField(&out, TagBeginString, m.BeginString)
	writeField(&out, TagBodyLength, strconv.Itoa(body.Len()))
	out.Write(body.Bytes())

	checksum := 0
	for _, b := range out.Bytes() {
		checksum += int(b)
	}
	checksum %= 256
	writeField(&out, TagCheckSum, fmt.Sprintf("%03d", checksum))

	return out.Bytes()
}

func writeField(buf *bytes.Buffer, tag int, value string) {
	buf.WriteString(strconv.Itoa(tag))
	buf.WriteByte('=')
	buf.WriteString(value)
	buf.WriteByte(SOH)
}

// Parse splits a raw FIX message into its ordered tag=value fields and
// validates BodyLength and CheckSum against the bytes actually received.
func Parse(raw []byte) (Message, error) {
	fields, err := splitFields(raw)
	if err != nil {
		return Message{}, err
	}
	if len(fields) < 4 {
		return Message{}, fmt.Errorf("fixsession: message too short: %d fields", len(fields))
	}
	if fields[0].Tag != TagBeginString {
		return Message{}, fmt.Errorf("fixsession: first tag %d, want BeginString(8)", fields[0].Tag)
	}
	if fields[1].Tag != TagBodyLength {
		return Message{}, fmt.Errorf("fixsession: second tag %d, want BodyLength(9)", fields[1].Tag)
	}
	last := fields[len(fields)-1]
	if last.Tag != TagCheckSum {
		return Message{}, fmt.Errorf("fixsession: last tag %d, want CheckSum(10)", last.Tag)
	}

	if err := verifyChecksum(raw, last.Value); err != nil {
		return Message{}, err
	}

	bodyStart := len(fmt.Sprintf("%d=%s%c%d=%s%c", TagBeginString, fields[0].Value, byte(SOH), TagBodyLength, fields[1].Value, byte(SOH)))
	bodyEnd := len(raw) - len(fmt.Sprintf("%d=%s%c", TagCheckSum, last.Value, byte(SOH)))
	if n, err := strconv.Atoi(fields[1].Value); err != nil || n != bodyEnd-bodyStart {
		return Message{}, fmt.Errorf("fixsession: BodyLength %s does not match %d body bytes", fields[1].Value, bodyEnd-bodyStart)
	}

	msg := Message{BeginString: fields[0].Value}
	for _, f := range fields[2 : len(fields)-1] {
		if f.Tag == TagMsgType {
			msg.MsgType = f.Value
			continue
		}
		msg.Fields = append(msg.Fields, f)
	}
	return msg, nil
}

func splitFields(raw []byte) ([]Field, error) {
	var fields []Field
	for _, part := range bytes.Split(bytes.TrimSuffix(raw, []byte{SOH}), []byte{SOH}) {
		if len(part) == 0 {
			continue
		}
		eq := bytes.IndexByte(part, '=')
		if eq < 0 {
			return nil, fmt.Errorf("fixsession: malformed field %q: missing '='", part)
		}
		tag, err := strconv.Atoi(string(part[:eq]))
		if err != nil {
			return nil, fmt.Errorf("fixsession: malformed tag %q: %w", part[:eq], err)
		}
		fields = append(fields, Field{Tag: tag, Value: string(part[eq+1:])})
	}
	return fields, nil
}

func verifyChecksum(raw []byte, want string) error {
	checksumField := fmt.Sprintf("%d=%s%c", TagCheckSum, want, byte(SOH))
	prefix := raw[:len(raw)-len(checksumField)]
	sum := 0
	for _, b := range prefix {
		sum += int(b)
	}
	sum %= 256
	if fmt.Sprintf("%03d", sum) != want {
		return fmt.Errorf("fixsession: checksum mismatch: computed %03d, wire %s", sum, want)
	}
	return nil
}
