// Copyright 2022 Matrix Origin
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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mo-arrayfn/pkg/config"
)

func TestGenerateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf))
	require.Contains(t, buf.String(), "hashtable-initial-size-degree = 4")

	path := filepath.Join(t.TempDir(), "arrayfn.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	params, err := config.LoadConfig(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, *config.NewParameters(), *params)
}
