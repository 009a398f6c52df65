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

package process

import (
	"context"

	"github.com/matrixorigin/mo-arrayfn/pkg/config"
)

type Limitation struct {
	// BatchRows is the largest batch a function accepts, 0 means unlimited.
	BatchRows int64
}

// Process carries what a function needs besides its arguments.
// One Process serves one batch evaluation at a time.
type Process struct {
	Id  string // query id
	Ctx context.Context
	Lim Limitation

	// FuncParams tune the array kernels.
	FuncParams config.FunctionParameters
}
