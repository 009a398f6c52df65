// Copyright 2021 Matrix Origin
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

package config

import (
	"context"
	"io"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/logutil"
)

type ConfigurationKeyType int

const (
	ParameterUnitKey ConfigurationKeyType = 1
)

const (
	defaultHashTableSizeDegree = 4
	maxHashTableSizeDegree     = 30
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// FunctionParameters tune the array function kernels.
type FunctionParameters struct {
	// HashTableInitialSizeDegree is log2 of the initial bucket count of the
	// scratch tables used by arrayUniq and arrayEnumerateUniq.
	HashTableInitialSizeDegree uint8 `toml:"hashtable-initial-size-degree"`

	// ForceHashedKeys skips fixed key packing even when the keys would fit.
	ForceHashedKeys bool `toml:"force-hashed-keys"`
}

// ExecutorParameters of the batch executor
type ExecutorParameters struct {
	// Workers is the size of the goroutine pool. 0 means runtime.NumCPU().
	Workers int `toml:"workers"`

	// MaxBatchRows rejects larger batches, 0 means unlimited.
	MaxBatchRows int64 `toml:"max-batch-rows"`
}

// Parameters is the whole configuration file.
type Parameters struct {
	Log      logutil.LogConfig  `toml:"log"`
	Function FunctionParameters `toml:"function"`
	Executor ExecutorParameters `toml:"executor"`
}

// NewParameters returns parameters holding every default.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.SetDefaultValues()
	return p
}

// SetDefaultValues fills every zero field with its default.
func (p *Parameters) SetDefaultValues() {
	if p.Log.Level == "" {
		p.Log.Level = defaultLogLevel
	}
	if p.Log.Format == "" {
		p.Log.Format = defaultLogFormat
	}
	if p.Function.HashTableInitialSizeDegree == 0 {
		p.Function.HashTableInitialSizeDegree = defaultHashTableSizeDegree
	}
	if p.Executor.Workers == 0 {
		p.Executor.Workers = runtime.NumCPU()
	}
}

func (p *Parameters) Validate(ctx context.Context) error {
	if p.Function.HashTableInitialSizeDegree > maxHashTableSizeDegree {
		return moerr.NewBadConfig(ctx, "hashtable-initial-size-degree %d exceeds %d",
			p.Function.HashTableInitialSizeDegree, maxHashTableSizeDegree)
	}
	if p.Executor.Workers < 0 {
		return moerr.NewBadConfig(ctx, "executor workers %d is negative", p.Executor.Workers)
	}
	if p.Executor.MaxBatchRows < 0 {
		return moerr.NewBadConfig(ctx, "max-batch-rows %d is negative", p.Executor.MaxBatchRows)
	}
	switch p.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfig(ctx, "unsupported log format %s", p.Log.Format)
	}
	return nil
}

// LoadConfig decodes the toml file at path, fills defaults and validates.
func LoadConfig(ctx context.Context, path string) (*Parameters, error) {
	p := &Parameters{}
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, moerr.NewBadConfig(ctx, "decode %s: %v", path, err)
	}
	p.SetDefaultValues()
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode writes p as toml.
func (p *Parameters) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// WithParameters stores p in ctx.
func WithParameters(ctx context.Context, p *Parameters) context.Context {
	return context.WithValue(ctx, ParameterUnitKey, p)
}

// GetParameters returns the parameters stored in ctx, or the defaults.
func GetParameters(ctx context.Context) *Parameters {
	if p, ok := ctx.Value(ParameterUnitKey).(*Parameters); ok && p != nil {
		return p
	}
	return NewParameters()
}
