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

// Package catalogyaml builds a fast.Catalog from a declarative YAML
// document native to this module. It is deliberately not a FAST
// template-XML parser: the document shape below is this module's own
// shorthand for what would otherwise be Go struct literals.
package catalogyaml

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tradecodecs/fastcodec/fast"
)

// Document is the root of a catalog descriptor: a flat list of templates.
type Document struct {
	Templates []TemplateDoc `yaml:"templates"`
}

// TemplateDoc describes one template: its wire id, a human-readable
// name, and its fields in declaration order.
type TemplateDoc struct {
	Id     uint32     `yaml:"id"`
	Name   string     `yaml:"name"`
	Fields []FieldDoc `yaml:"fields"`
}

// FieldDoc describes one field slot. Sequence fields additionally carry
// Length and Element; every other type leaves both nil.
type FieldDoc struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Operator  string `yaml:"operator"`
	Mandatory bool   `yaml:"mandatory"`
	Unicode   bool   `yaml:"unicode,omitempty"`
	PmapBit   int    `yaml:"pmapBit,omitempty"`

	Reset *ResetDoc `yaml:"reset,omitempty"`

	PmapRequired bool       `yaml:"pmapRequired,omitempty"`
	Length       *FieldDoc  `yaml:"length,omitempty"`
	Element      []FieldDoc `yaml:"element,omitempty"`
}

// ResetDoc carries a field's reset value in whichever of its members
// applies to the field's declared Type.
type ResetDoc struct {
	Int     *int64  `yaml:"int,omitempty"`
	Uint    *uint64 `yaml:"uint,omitempty"`
	Ascii   *string `yaml:"ascii,omitempty"`
	Unicode *string `yaml:"unicode,omitempty"`
	DecExp  *int64  `yaml:"decExp,omitempty"`
	DecMnt  *int64  `yaml:"decMnt,omitempty"`
}

// Load reads a Document from r and builds the fast.Catalog it describes.
func Load(r io.Reader) (*fast.Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalogyaml: decode: %w", err)
	}

	templates := make([]*fast.Template, 0, len(doc.Templates))
	for _, td := range doc.Templates {
		tmpl, err := buildTemplate(td)
		if err != nil {
			return nil, fmt.Errorf("catalogyaml: template %q: %w", td.Name, err)
		}
		templates = append(templates, tmpl)
	}
	return fast.NewCatalog(templates...), nil
}

func buildTemplate(td TemplateDoc) (*fast.Template, error) {
	fields := make([]*fast.FieldDescriptor, 0, len(td.Fields))
	for _, fd := range td.Fields {
		d, err := buildField(fd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		fields = append(fields, d)
	}
	return &fast.Template{Id: td.Id, Name: td.Name, Fields: fields}, nil
}

func buildField(fd FieldDoc) (*fast.FieldDescriptor, error) {
	typ, err := parseType(fd.Type)
	if err != nil {
		return nil, err
	}
	op, err := parseOperator(fd.Operator)
	if err != nil {
		return nil, err
	}

	d := &fast.FieldDescriptor{
		Name:         fd.Name,
		Type:         typ,
		Operator:     op,
		Mandatory:    fd.Mandatory,
		Unicode:      fd.Unicode,
		PmapBit:      fd.PmapBit,
		PmapRequired: fd.PmapRequired,
	}

	if fd.Reset != nil {
		applyReset(d, typ, fd.Reset)
	}

	if typ == fast.TypeSequence {
		if fd.Length == nil {
			return nil, fmt.Errorf("sequence field missing length descriptor")
		}
		lengthDesc, err := buildField(*fd.Length)
		if err != nil {
			return nil, fmt.Errorf("length field: %w", err)
		}
		d.Length = lengthDesc

		elementFields := make([]*fast.FieldDescriptor, 0, len(fd.Element))
		for _, ed := range fd.Element {
			ef, err := buildField(ed)
			if err != nil {
				return nil, fmt.Errorf("element field %q: %w", ed.Name, err)
			}
			elementFields = append(elementFields, ef)
		}
		d.Element = &fast.Template{Name: fd.Name + "Element", Fields: elementFields}
	}

	return d, nil
}

func applyReset(d *fast.FieldDescriptor, typ fast.Type, r *ResetDoc) {
	d.HasReset = true
	switch typ {
	case fast.TypeInt:
		if r.Int != nil {
			d.ResetInt = *r.Int
		}
	case fast.TypeUint:
		if r.Uint != nil {
			d.ResetUint = *r.Uint
		}
	case fast.TypeAscii:
		if r.Ascii != nil {
			d.ResetAscii = *r.Ascii
		}
	case fast.TypeUnicode:
		if r.Unicode != nil {
			d.ResetUnicode = []byte(*r.Unicode)
		}
	case fast.TypeDecimal:
		if r.DecExp != nil {
			d.ResetDecimal.Exp = *r.DecExp
		}
		if r.DecMnt != nil {
			d.ResetDecimal.Mnt = *r.DecMnt
		}
	}
}

func parseType(s string) (fast.Type, error) {
	switch s {
	case "int":
		return fast.TypeInt, nil
	case "uint":
		return fast.TypeUint, nil
	case "ascii":
		return fast.TypeAscii, nil
	case "unicode":
		return fast.TypeUnicode, nil
	case "decimal":
		return fast.TypeDecimal, nil
	case "sequence":
		return fast.TypeSequence, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", s)
	}
}

func parseOperator(s string) (fast.Operator, error) {
	switch s {
	case "", "none":
		return fast.OpNone, nil
	case "copy":
		return fast.OpCopy, nil
	case "increment":
		return fast.OpIncrement, nil
	case "delta":
		return fast.OpDelta, nil
	case "constant":
		return fast.OpConstant, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}
