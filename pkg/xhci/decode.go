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
	"jinr.ru/greenlab/go-xhci/pkg/bits"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
)

type options struct {
	head          string
	endpointIndex int
}

type Option func(*options)

// WithHead names the first member of the result
func WithHead(name string) Option {
	return func(o *options) {
		o.head = name
	}
}

// WithEndpointIndex names a standalone Endpoint Context after its position in a Device Context
func WithEndpointIndex(index int) Option {
	return func(o *options) {
		o.endpointIndex = index
	}
}

// Decode checks the size of data against the kind and decodes it.
// No decoder runs when data is shorter than the kind requires.
func Decode(kind Kind, data []byte, opts ...Option) (*Result, error) {
	o := &options{endpointIndex: -1}
	for _, opt := range opts {
		opt(o)
	}
	if required := kind.MinSize(); required > 0 && len(data) < required {
		return nil, layers.ErrInsufficientData{Structure: kind.String(), Required: required, Actual: len(data)}
	}

	var s *layers.Structure
	var err error
	switch kind {
	case KindSlot:
		s, err = layers.DecodeSlotContext(data)
	case KindEndpoint:
		s, err = layers.DecodeEndpointContext(data, o.endpointIndex)
	case KindInputControl:
		s, err = layers.DecodeInputControlContext(data)
	case KindDevice:
		return BuildDeviceContext(data, o.head)
	case KindInput:
		return BuildInputContext(data, o.head)
	default:
		return nil, ErrUnsupportedStructure{Code: kind.String(), Valid: Codes()}
	}
	if err != nil {
		return nil, err
	}

	name := s.Title
	if o.head != "" {
		name = o.head
	}
	result := newResult(kind, 1)
	if err := result.add(name, s); err != nil {
		return nil, err
	}
	return result, nil
}

// DecodeCode parses the codename and decodes data
func DecodeCode(code string, data []byte, opts ...Option) (*Result, error) {
	kind, err := ParseKind(code)
	if err != nil {
		return nil, err
	}
	return Decode(kind, data, opts...)
}

// DecodeWords decodes data given as 32-bit words
func DecodeWords(kind Kind, words []uint32, opts ...Option) (*Result, error) {
	return Decode(kind, bits.WordsToBytes(words), opts...)
}
