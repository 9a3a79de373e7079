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

package linker_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/linker"
)

func TestSubprocessWrapperLinkFailurePropagates(t *testing.T) {
	w := linker.SubprocessWrapper{Program: "definitely-not-a-real-linker-binary"}
	_, err := w.Link(filepath.Join(t.TempDir(), "out.o"))
	require.Error(t, err)
}

func TestFirstAvailableTriesEveryCandidate(t *testing.T) {
	obj := filepath.Join(t.TempDir(), "out.o")
	_, err := linker.FirstAvailable([]string{"nonexistent-1", "nonexistent-2"}, obj)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent-2")
}

func TestFirstAvailableRejectsEmptyCandidateList(t *testing.T) {
	_, err := linker.FirstAvailable(nil, "out.o")
	assert.Error(t, err)
}
