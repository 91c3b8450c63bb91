// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/multireplace/pkg/config"
	"github.com/walteh/multireplace/pkg/node"
)

func ExampleLoad() {
	dir, _ := os.MkdirTemp("", "workflow")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "workflow.yaml")
	_ = os.WriteFile(path, []byte(`text: Hello World
pairs:
  - find: Hello
    replace: Hi
  - find: World
    replace_input: Earth
`), 0644)

	wf, err := config.Load(context.Background(), path)
	if err != nil {
		fmt.Println(err)
		return
	}

	in := wf.Inputs()
	fmt.Println(in[node.PairCountKey])
	fmt.Println(in[node.ReplaceInputKey(2)])
	// Output:
	// 2
	// Earth
}
