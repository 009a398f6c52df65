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

package concurrent

import (
	"context"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/matrixorigin/mo-arrayfn/pkg/common/moerr"
)

// ThreadPoolExecutor splits a range of items over a fixed goroutine pool.
type ThreadPoolExecutor struct {
	nthreads int
	pool     *ants.Pool
}

func NewThreadPoolExecutor(nthreads int) (*ThreadPoolExecutor, error) {
	if nthreads <= 0 {
		nthreads = runtime.NumCPU()
	}
	e := &ThreadPoolExecutor{nthreads: nthreads}
	pool, err := ants.NewPool(nthreads, ants.WithPreAlloc(true))
	if err != nil {
		return nil, moerr.NewInternalErrorNoCtx("create worker pool: %v", err)
	}
	e.pool = pool
	return e, nil
}

func (e *ThreadPoolExecutor) Threads() int {
	return e.nthreads
}

// Execute calls fn over consecutive [start, end) slices of nitems, one per
// thread, each slice running on the pool. The ctx passed to fn is cancelled
// as soon as one call fails, and the first error is returned once every
// call has finished. A panic in fn is returned as an error.
func (e *ThreadPoolExecutor) Execute(
	ctx context.Context,
	nitems int,
	fn func(ctx context.Context, threadID int, start, end int) error) error {

	g, ctx := errgroup.WithContext(ctx)

	q := nitems / e.nthreads
	r := nitems % e.nthreads

	start := 0
	for i := 0; i < e.nthreads; i++ {
		size := q
		if i < r {
			size++
		}
		if size == 0 {
			break
		}

		end := start + size
		threadID := i
		curStart := start
		curEnd := end
		g.Go(func() error {
			return e.run(ctx, func() error {
				return fn(ctx, threadID, curStart, curEnd)
			})
		})
		start = end
	}

	return g.Wait()
}

// run executes task on a pool worker and waits for it.
func (e *ThreadPoolExecutor) run(ctx context.Context, task func() error) error {
	done := make(chan error, 1)
	err := e.pool.Submit(func() {
		defer func() {
			if p := recover(); p != nil {
				done <- moerr.ConvertPanicError(ctx, p)
			}
		}()
		done <- task()
	})
	if err != nil {
		return moerr.NewInternalError(ctx, "submit task: %v", err)
	}
	return <-done
}

// Release stops the pool. The executor must not be used afterwards.
func (e *ThreadPoolExecutor) Release() {
	e.pool.Release()
}
