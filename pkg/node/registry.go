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

package node

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// Category groups both nodes in the host's menu.
const Category = "text/replace"

// 📦 Descriptor describes a node to the host
type Descriptor struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	ReturnTypes    []string `json:"return_types"`
	ReturnNames    []string `json:"return_names"`
	OutputTooltips []string `json:"output_tooltips"`
}

// Registry maps node class names to descriptors.
type Registry struct {
	nodes map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: map[string]Descriptor{}}
}

// DefaultRegistry holds FindReplacePairs and TextReplacer.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// both names are unique, so these cannot fail
	_ = r.Register(FindReplacePairsDescriptor)
	_ = r.Register(TextReplacerDescriptor)
	return r
}

// Register adds a descriptor. Names must be unique.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.Errorf("node name is required")
	}
	if _, ok := r.nodes[d.Name]; ok {
		return errors.Errorf("node %q already registered", d.Name)
	}
	r.nodes[d.Name] = d
	return nil
}

// Get looks up a descriptor by class name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.nodes[name]
	return d, ok
}

// Descriptors returns every descriptor sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.nodes))
	for _, d := range r.nodes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DisplayNames maps class names to display names.
func (r *Registry) DisplayNames() map[string]string {
	out := make(map[string]string, len(r.nodes))
	for name, d := range r.nodes {
		out[name] = d.DisplayName
	}
	return out
}
