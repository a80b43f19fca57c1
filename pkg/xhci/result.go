/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package xhci

import (
	"github.com/samber/lo"

	"jinr.ru/greenlab/go-xhci/pkg/layers"
)

// Member is a named context inside a decode result
type Member struct {
	Name      string            `json:"name"`
	Structure *layers.Structure `json:"structure"`
}

// Result is the ordered list of decoded contexts. Members follow the layout order of the hardware.
type Result struct {
	Kind    Kind     `json:"kind"`
	Members []Member `json:"members"`
}

func newResult(kind Kind, capacity int) *Result {
	return &Result{
		Kind:    kind,
		Members: make([]Member, 0, capacity),
	}
}

func (r *Result) add(name string, s *layers.Structure) error {
	if _, ok := r.Member(name); ok {
		return ErrDuplicateMember{Name: name}
	}
	if s.Title != name {
		s = s.WithTitle(name)
	}
	r.Members = append(r.Members, Member{Name: name, Structure: s})
	return nil
}

// Member looks up a member by name
func (r *Result) Member(name string) (*layers.Structure, bool) {
	m, ok := lo.Find(r.Members, func(m Member) bool {
		return m.Name == name
	})
	return m.Structure, ok
}

// Names returns the member names in order
func (r *Result) Names() []string {
	return lo.Map(r.Members, func(m Member, _ int) string {
		return m.Name
	})
}

func (r *Result) Len() int {
	return len(r.Members)
}
