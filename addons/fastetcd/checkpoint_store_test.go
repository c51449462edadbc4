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

package fastetcd

import (
	"strconv"
	"strings"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	k := key("session-42", 7)
	if k != "session-42/7" {
		t.Fatalf("key = %q, want %q", k, "session-42/7")
	}
}

func TestCursorKeyDistinctFromTemplateKeys(t *testing.T) {
	k := cursorKey("session-42")
	if k != "session-42/cursor" {
		t.Fatalf("cursorKey = %q, want %q", k, "session-42/cursor")
	}
	suffix := strings.TrimPrefix(k, "session-42/")
	if _, err := strconv.ParseUint(suffix, 10, 32); err == nil {
		t.Fatalf("cursor key suffix must not parse as a template id")
	}
}
