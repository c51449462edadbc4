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

// Template is the ordered schema of a message class: a template id plus
// its fields' descriptors, in declaration order. Templates are built once
// from an external catalog definition and are logically immutable for
// the life of the process; NewInstance produces the mutable,
// per-connection field state that decoding actually writes into.
type Template struct {
	Id     uint32
	Name   string
	Fields []*FieldDescriptor
}

// Instance is one connection's exclusively-owned, mutable binding of a
// Template: its Fields carry the cross-message state (value, previous
// value, presence) that makes FAST a compression scheme instead of just
// a binary FIX. Two Instances of the same Template never share field
// state; the Catalog handing out Templates is the only thing that is
// safely shared by reference across connections.
type Instance struct {
	Template *Template
	Fields   []*Field

	byName map[string]*Field
}

// NewInstance builds a fresh, all-UNDEFINED Instance bound to t. Callers
// typically do this once per connection/session and keep it for the
// session's lifetime.
func (t *Template) NewInstance() *Instance {
	inst := &Instance{
		Template: t,
		Fields:   make([]*Field, len(t.Fields)),
		byName:   make(map[string]*Field, len(t.Fields)),
	}
	for i, d := range t.Fields {
		f := newField(d)
		inst.Fields[i] = f
		inst.byName[d.Name] = f
	}
	return inst
}

// clone returns an independent copy of the instance carrying its current
// mutable field state.
func (inst *Instance) clone() *Instance {
	ni := &Instance{
		Template: inst.Template,
		Fields:   make([]*Field, len(inst.Fields)),
		byName:   make(map[string]*Field, len(inst.Fields)),
	}
	for i, f := range inst.Fields {
		nf := f.clone()
		ni.Fields[i] = nf
		ni.byName[nf.Descriptor.Name] = nf
	}
	return ni
}

// Field looks up a field instance by its descriptor name.
func (inst *Instance) Field(name string) (*Field, bool) {
	f, ok := inst.byName[name]
	return f, ok
}

// Reset restores every field in the instance to its declared reset value
// (or UNDEFINED), matching fast_message_reset in the original. Use this
// to recover a template's state after abandoning a garbled message,
// instead of tearing down the whole connection.
func (inst *Instance) Reset() {
	for _, f := range inst.Fields {
		f.reset()
	}
}
