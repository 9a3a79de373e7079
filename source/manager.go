// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package source implements the front end's Source Manager: it assigns
// stable integer IDs to registered file paths and resolves IDs back to
// paths. It owns the interned path strings (spec.md §4.1).
package source

import (
	"fmt"
	"sync"

	"github.com/bufbuild/la/token"
)

// Manager assigns monotonically increasing, never-reused [token.FileID]s to
// file paths as they are registered. Re-registering the same path is
// idempotent: [Manager.Register] returns the existing ID.
//
// Manager is only ever mutated from the single parsing goroutine that owns
// a given compilation; see spec.md §5. The directory-mode driver compiles
// independent roots concurrently, each with its own Manager, so no locking
// is required there either -- the mutex here exists purely so a Manager can
// also be shared safely by tooling (tests, the LSP-shaped `gen-ast` command)
// that may read it from a second goroutine after parsing completes.
type Manager struct {
	mu    sync.RWMutex
	paths []string
	byPath map[string]token.FileID
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{byPath: map[string]token.FileID{}}
}

// Register assigns path a FileID, or returns its existing one.
func (m *Manager) Register(path string) token.FileID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byPath[path]; ok {
		return id
	}
	id := token.FileID(len(m.paths))
	m.paths = append(m.paths, path)
	m.byPath[path] = id
	return id
}

// IsRegistered reports whether path has already been registered. The
// compilation driver uses this to gate re-parsing of import/load targets
// (spec.md §4.1, §4.8).
func (m *Manager) IsRegistered(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byPath[path]
	return ok
}

// Resolve returns the path registered under id.
//
// Panics if id was never registered by this Manager; callers only ever
// pass IDs obtained from [Manager.Register] or from a Span minted by a
// Scanner constructed against this same Manager, so this should never be
// reachable in practice.
func (m *Manager) Resolve(id token.FileID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(m.paths) {
		panic(fmt.Sprintf("source: unregistered file id %d", id))
	}
	return m.paths[id]
}

// Len returns the number of registered files.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.paths)
}
