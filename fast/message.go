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

// Message is the decoder/encoder-facing view of one application message:
// which template it belongs to and the field values carried on this
// particular wire occurrence, independent of the cross-message state an
// Instance tracks internally. Decode returns a Message; Encode consumes
// one.
type Message struct {
	TemplateId   uint32
	TemplateName string
	Values       map[string]Value
}

// messageFromInstance snapshots an Instance's current field values (after
// a decode) into a standalone Message, leaving the Instance's own state
// untouched for the next message on the same template.
func messageFromInstance(inst *Instance) *Message {
	m := &Message{
		TemplateId:   inst.Template.Id,
		TemplateName: inst.Template.Name,
		Values:       make(map[string]Value, len(inst.Fields)),
	}
	for _, f := range inst.Fields {
		if v := f.Value(); v != nil {
			m.Values[f.Descriptor.Name] = v
		}
	}
	return m
}

// applyToInstance copies a Message's values onto an Instance ahead of an
// Encode call. Optional fields present in the template but absent from
// m.Values are marked EMPTY; absent mandatory fields keep their current
// state and value (see Field.SetEmpty). Callers populate m.Values only with what they intend
// to send (or omit, to let COPY/INCR/DELTA recompute it from history).
func applyToInstance(inst *Instance, m *Message) {
	for _, f := range inst.Fields {
		if v, ok := m.Values[f.Descriptor.Name]; ok {
			f.SetValue(v)
		} else {
			f.SetEmpty()
		}
	}
}
