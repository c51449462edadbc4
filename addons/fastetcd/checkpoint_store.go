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

// Package fastetcd persists a session's per-template cross-message
// operator state (the COPY/INCREMENT/DELTA history fast.Decoder and
// fast.Encoder carry) into etcd, keyed by session id, so a reconnecting
// session recovers its place in the stream instead of forcing the
// counterparty to replay from the last full template id.
package fastetcd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/namespace"

	"github.com/tradecodecs/fastcodec/fast"
)

// CheckpointStore snapshots and restores fast.InstanceSnapshot values
// keyed by (sessionID, templateID) into etcd, the way the teacher's etcd
// addon shards ipfix.Template and ipfix.InformationElement records under
// a namespaced prefix.
type CheckpointStore struct {
	client *clientv3.Client

	mu sync.RWMutex

	// revisions records the etcd header revision of this store's last
	// write to each key; Delete drops a session's entries. Nothing in the
	// store reads it back.
	revisions map[string]int64

	namespace string
	prefix    string
}

// NewCheckpointStore builds a store rooted at the "sessions/" namespace
// of client. The supplied client's KV, Watcher and Lease are rebound
// with that namespace in place.
func NewCheckpointStore(client *clientv3.Client) *CheckpointStore {
	ns := "sessions"
	prefix := ns + "/"

	client.KV = namespace.NewKV(client.KV, prefix)
	client.Watcher = namespace.NewWatcher(client.Watcher, prefix)
	client.Lease = namespace.NewLease(client.Lease, prefix)

	return &CheckpointStore{
		client:    client,
		revisions: make(map[string]int64),
		namespace: ns,
		prefix:    prefix,
	}
}

// Name reports the store's namespaced identity, mirroring the teacher's
// Name() convention on its cache types.
func (s *CheckpointStore) Name() string {
	return s.namespace
}

func key(sessionID string, templateID uint32) string {
	return sessionID + "/" + strconv.FormatUint(uint64(templateID), 10)
}

// cursorKeySuffix names the reserved, non-numeric key a session's
// fast.DecoderCursor is stored under, alongside its numeric per-template
// checkpoints. LoadAll skips it rather than treating it as a malformed
// template id.
const cursorKeySuffix = "cursor"

func cursorKey(sessionID string) string {
	return sessionID + "/" + cursorKeySuffix
}

// Save persists one template's current checkpoint for sessionID. Callers
// typically do this on every message, or at minimum right before a
// connection is torn down, so the next Load sees the latest state.
func (s *CheckpointStore) Save(ctx context.Context, sessionID string, templateID uint32, snap fast.InstanceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("fastetcd: marshal checkpoint: %w", err)
	}

	k := key(sessionID, templateID)
	res, err := s.client.Put(ctx, k, string(body), clientv3.WithPrevKV())
	if err != nil {
		return fmt.Errorf("fastetcd: put checkpoint %s: %w", k, err)
	}
	s.revisions[k] = res.Header.Revision
	return nil
}

// LoadAll fetches every template checkpoint stored for sessionID, keyed
// by template id, restoring the layout fast.Decoder.Restore and
// fast.Encoder.Restore expect.
func (s *CheckpointStore) LoadAll(ctx context.Context, sessionID string) (map[uint32]fast.InstanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessionPrefix := sessionID + "/"
	res, err := s.client.Get(ctx, sessionPrefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("fastetcd: get checkpoints for session %q: %w", sessionID, err)
	}

	out := make(map[uint32]fast.InstanceSnapshot, len(res.Kvs))
	for _, kv := range res.Kvs {
		suffix := strings.TrimPrefix(string(kv.Key), sessionPrefix)
		if suffix == cursorKeySuffix {
			continue
		}
		tid, err := strconv.ParseUint(suffix, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fastetcd: malformed checkpoint key %q: %w", kv.Key, err)
		}

		var snap fast.InstanceSnapshot
		if err := json.Unmarshal(kv.Value, &snap); err != nil {
			return nil, fmt.Errorf("fastetcd: unmarshal checkpoint %q: %w", kv.Key, err)
		}
		out[uint32(tid)] = snap
	}
	return out, nil
}

// SaveCursor persists sessionID's decoder tid-omission state. Callers
// that checkpoint a fast.Decoder must save its Cursor alongside Save's
// per-template snapshots, or a restored Decoder will reject the first
// message whose pmap omits the template id.
func (s *CheckpointStore) SaveCursor(ctx context.Context, sessionID string, cursor fast.DecoderCursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("fastetcd: marshal cursor: %w", err)
	}

	k := cursorKey(sessionID)
	res, err := s.client.Put(ctx, k, string(body), clientv3.WithPrevKV())
	if err != nil {
		return fmt.Errorf("fastetcd: put cursor %s: %w", k, err)
	}
	s.revisions[k] = res.Header.Revision
	return nil
}

// LoadCursor fetches sessionID's decoder tid-omission state. It returns
// the zero fast.DecoderCursor and ok=false if none was ever saved, which
// RestoreCursor handles the same as a Decoder that has not yet seen a
// tid-bearing message.
func (s *CheckpointStore) LoadCursor(ctx context.Context, sessionID string) (cursor fast.DecoderCursor, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k := cursorKey(sessionID)
	res, err := s.client.Get(ctx, k)
	if err != nil {
		return fast.DecoderCursor{}, false, fmt.Errorf("fastetcd: get cursor %s: %w", k, err)
	}
	if len(res.Kvs) == 0 {
		return fast.DecoderCursor{}, false, nil
	}
	if err := json.Unmarshal(res.Kvs[0].Value, &cursor); err != nil {
		return fast.DecoderCursor{}, false, fmt.Errorf("fastetcd: unmarshal cursor %s: %w", k, err)
	}
	return cursor, true, nil
}

// Delete removes every checkpoint stored for sessionID, e.g. once a
// session has logged out cleanly and its state no longer needs to
// survive a reconnect.
func (s *CheckpointStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionPrefix := sessionID + "/"
	if _, err := s.client.Delete(ctx, sessionPrefix, clientv3.WithPrefix()); err != nil {
		return fmt.Errorf("fastetcd: delete session %q: %w", sessionID, err)
	}
	for k := range s.revisions {
		if strings.HasPrefix(k, sessionPrefix) {
			delete(s.revisions, k)
		}
	}
	return nil
}

// Close releases the underlying etcd client.
func (s *CheckpointStore) Close() error {
	return s.client.Close()
}
