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

/*
Package config loads workflow files for the multireplace harness.

	            +-------------+
	            |  Workflow   |
	            | (slots+text)|
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Describe one FindReplacePairs + TextReplacer run in a file
- Pick a parser from the file extension
- Validate slot and count bounds before anything runs
- Hand the result to pkg/node as the same named inputs a host would send

🔍 Example (YAML):

	source_id: node-1
	text: Hello World
	pairs:
	  - find: Hello
	    replace: Hi
	  - find: World
	    find_input: Earth
	    replace: Moon
	options:
	  replace_all: false

The same workflow in HCL:

	source_id = "node-1"
	text      = "Hello World"

	pair {
	  find    = "Hello"
	  replace = "Hi"
	}

	options {
	  replace_all = false
	}
*/
package config
