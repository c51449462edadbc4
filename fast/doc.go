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

/*
Package fast implements a decoder and encoder for the FAST (FIX Adapted for
STreaming) protocol, a template-driven binary compression scheme for
FIX-style market data and order messages.

# Overview

Every field declared by a template carries an operator (none, copy,
increment, delta, constant) that determines how its wire representation
relates to the value carried by the previous message of the same template.
A decoder therefore keeps per-field, per-template mutable state: the
current value, the previous value, and a tri-state presence (undefined,
assigned, empty). Each message is preceded by a presence map (pmap), a
bitfield telling the decoder which fields with a pmap-consuming operator
are physically present on the wire versus reconstructed from the carried
state.

# Historical background

This package factors the FAST codec out of libtrading, a C electronic
trading toolkit that also implements FIX session framing, SoupBinTCP
session envelopes, and PITCH market data messages alongside it. Those
three surfaces are carried in sibling packages (fixsession, soupbintcp,
pitch) of this module, unchanged in wire shape, while the FAST codec
itself — the stateful, template-driven part — has been rebuilt from
scratch in idiomatic Go: a discriminated value union in place of the
original's overlapping struct members, a transactional buffer rewind API
in place of manual negative advances, and field state bound to a
per-connection template instance rather than a global table.

# Data structures

A Catalog holds an immutable set of Templates, indexed by template ID.
Each Template owns an ordered list of immutable FieldDescriptors; an
Instance built from it holds the mutable Fields. Decoding borrows an
Instance's field state exclusively for the duration of one
Decoder.Decode call; state then persists until the next
message of the same template arrives, which is the entire reason FAST
exists as a compression scheme over FIX.
*/
package fast
