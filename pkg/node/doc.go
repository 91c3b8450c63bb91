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
Package node adapts the pair collector and the replacement engine to a
node-graph host.

	+------------------+   Collection   +--------------+
	| FindReplacePairs | -------------> | TextReplacer |
	+------------------+                +--------------+
	    (pairs, json, csv)          (result, pairs, log, count)

🎯 Purpose:
- Translate the host's named inputs (find_<i>, replace_<i>_input, pair_count,
  unique_id, ...) into the typed values pkg/pairs and pkg/text work with
- Shape results into the fixed output tuples the host expects
- Expose IsChanged fingerprints for host-side memoization
- Describe both nodes for registration

Both nodes are stateless; a single value can serve any number of concurrent
graph executions.
*/
package node
