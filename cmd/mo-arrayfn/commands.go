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
	"context"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/concurrent"
	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
	"github.com/matrixorigin/mo-arrayfn/pkg/config"
	"github.com/matrixorigin/mo-arrayfn/pkg/container/batch"
	"github.com/matrixorigin/mo-arrayfn/pkg/logutil"
	"github.com/matrixorigin/mo-arrayfn/pkg/sql/plan/function"
)

type options struct {
	configFile string
	workers    int
}

func rootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "mo-arrayfn",
		Short:         "Evaluate array functions over JSON batches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "toml configuration file")
	cmd.PersistentFlags().IntVarP(&opts.workers, "workers", "w", -1, "executor workers, overrides the configuration")
	cmd.AddCommand(evalCommand(opts), functionsCommand())
	return cmd
}

// loadParameters reads the configuration and installs its logger.
func (opts *options) loadParameters(ctx context.Context) (*config.Parameters, error) {
	params := config.NewParameters()
	if opts.configFile != "" {
		var err error
		if params, err = config.LoadConfig(ctx, opts.configFile); err != nil {
			return nil, err
		}
	}
	if opts.workers >= 0 {
		params.Executor.Workers = opts.workers
	}
	if err := params.Validate(ctx); err != nil {
		return nil, err
	}
	logutil.SetupMOLogger(&params.Log)
	return params, nil
}

func evalCommand(opts *options) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "eval <function>",
		Short: "Evaluate a function over the batches read from --input",
		Long: "Reads a JSON array of batches, each holding the argument columns, " +
			"evaluates the function over every batch in parallel and prints one JSON result per line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			params, err := opts.loadParameters(ctx)
			if err != nil {
				return err
			}
			data, err := readInput(ctx, cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			return eval(config.WithParameters(ctx, params), params, args[0], data, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "input file, - for stdin")
	return cmd
}

func readInput(ctx context.Context, stdin io.Reader, path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	return data, moerr.ConvertGoError(ctx, err)
}

func eval(ctx context.Context, params *config.Parameters, name string, data []byte, out io.Writer) error {
	bats, err := batch.DecodeJSON(data)
	if err != nil {
		return err
	}
	exec, err := concurrent.NewThreadPoolExecutor(params.Executor.Workers)
	if err != nil {
		return err
	}
	defer exec.Release()

	logutil.Info(ctx, "evaluating",
		zap.String("function", name),
		zap.Int("batches", len(bats)),
		zap.Int("workers", exec.Threads()))
	results, err := function.RunBatches(ctx, exec, name, bats, params)
	if err != nil {
		return err
	}
	for _, res := range results {
		line, err := batch.EncodeVector(res)
		if err != nil {
			return err
		}
		if _, err := out.Write(append(line, '\n')); err != nil {
			return moerr.ConvertGoError(ctx, err)
		}
	}
	return nil
}

func functionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the available functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := function.Names()
			sort.Strings(names)
			for _, name := range names {
				if _, err := io.WriteString(cmd.OutOrStdout(), name+"\n"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
