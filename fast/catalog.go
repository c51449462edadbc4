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

// Catalog is an immutable collection of Templates keyed by their template
// id, shared by every connection decoding or encoding against the same
// template set. A Catalog has no mutable state of its own; per-connection
// state lives in the Instances a Decoder or Encoder derives from it.
type Catalog struct {
	byId map[uint32]*Template
}

// NewCatalog builds a Catalog from a set of Templates. It panics on a
// duplicate template id, since a catalog with two templates claiming the
// same id can never be built by accident in a well-formed deployment and
// is cheaper to catch here than downstream as a silent overwrite.
func NewCatalog(templates ...*Template) *Catalog {
	c := &Catalog{byId: make(map[uint32]*Template, len(templates))}
	for _, t := range templates {
		if _, exists := c.byId[t.Id]; exists {
			panic("fast: duplicate template id in catalog")
		}
		c.byId[t.Id] = t
	}
	return c
}

// Template looks up a template by id.
func (c *Catalog) Template(id uint32) (*Template, bool) {
	t, ok := c.byId[id]
	return t, ok
}

// MustTemplate is Template, panicking on a miss. Intended for catalog
// construction code (e.g. catalogyaml) where a missing reference is a
// configuration bug, not a runtime condition to recover from.
func (c *Catalog) MustTemplate(id uint32) *Template {
	t, ok := c.byId[id]
	if !ok {
		panic("fast: no such template in catalog")
	}
	return t
}

// Len reports the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.byId)
}
