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

package catalogyaml

import (
	"strings"
	"testing"

	"github.com/tradecodecs/fastcodec/fast"
)

const quoteDescriptor = `
templates:
  - id: 1
    name: Quote
    fields:
      - name: Symbol
        type: ascii
        operator: copy
        mandatory: true
        pmapBit: 1
      - name: BidPrice
        type: decimal
        operator: delta
        mandatory: false
      - name: BidSize
        type: uint
        operator: increment
        mandatory: false
        pmapBit: 2
      - name: Levels
        type: sequence
        mandatory: false
        length:
          name: LevelsCount
          type: uint
          operator: none
          mandatory: false
        element:
          - name: Price
            type: decimal
            operator: none
            mandatory: true
          - name: Qty
            type: uint
            operator: none
            mandatory: true
`

func TestLoadBuildsCatalog(t *testing.T) {
	catalog, err := Load(strings.NewReader(quoteDescriptor))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("catalog has %d templates, want 1", catalog.Len())
	}

	tmpl, ok := catalog.Template(1)
	if !ok {
		t.Fatalf("template id 1 not found")
	}
	if tmpl.Name != "Quote" {
		t.Fatalf("Name = %q, want Quote", tmpl.Name)
	}
	if len(tmpl.Fields) != 4 {
		t.Fatalf("Fields = %d, want 4", len(tmpl.Fields))
	}

	levels := tmpl.Fields[3]
	if levels.Type != fast.TypeSequence {
		t.Fatalf("Levels.Type = %v, want TypeSequence", levels.Type)
	}
	if levels.Length == nil || levels.Length.Name != "LevelsCount" {
		t.Fatalf("Levels.Length = %+v", levels.Length)
	}
	if levels.Element == nil || len(levels.Element.Fields) != 2 {
		t.Fatalf("Levels.Element = %+v", levels.Element)
	}
}

func TestLoadRejectsUnknownType(t *testing.T) {
	bad := `
templates:
  - id: 1
    name: Bad
    fields:
      - name: X
        type: imaginary
        operator: none
        mandatory: true
`
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected an error for unknown field type")
	}
}
