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
	"fmt"
	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-xhci/pkg/layers"
	"jinr.ru/greenlab/go-xhci/pkg/log"
)

// contextLayer is a decoded context layer of a composite packet
type contextLayer interface {
	gopacket.Layer
	Structure() *layers.Structure
}

// BuildDeviceContext decodes a Slot Context followed by 31 Endpoint Contexts.
// The Slot Context member is named head, "Slot Context" when head is empty.
// Bytes after the Device Context are ignored.
func BuildDeviceContext(data []byte, head string) (*Result, error) {
	if len(data) < DeviceContextSize {
		return nil, layers.ErrInsufficientData{Structure: DeviceContextName, Required: DeviceContextSize, Actual: len(data)}
	}
	if head == "" {
		head = layers.SlotContextName
	}
	return compose(KindDevice, data[:DeviceContextSize], layers.SlotContextLayerType, head)
}

// BuildInputContext decodes an Input Control Context followed by a Device Context.
// The Input Control Context member is named head, "Input Control Context" when head is empty.
func BuildInputContext(data []byte, head string) (*Result, error) {
	if len(data) < InputContextSize {
		return nil, layers.ErrInsufficientData{Structure: InputContextName, Required: InputContextSize, Actual: len(data)}
	}
	if head == "" {
		head = layers.InputControlContextName
	}
	return compose(KindInput, data[:InputContextSize], layers.InputControlContextLayerType, head)
}

// compose runs the layer chain starting at first and collects one member per layer
func compose(kind Kind, data []byte, first gopacket.Decoder, head string) (*Result, error) {
	packet := gopacket.NewPacket(data, first, gopacket.DecodeOptions{NoCopy: true})
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		log.Debug("%s decode failed: %s", kind, errLayer.Error())
		return nil, errLayer.Error()
	}

	expected := kind.Size() / layers.ContextSize
	result := newResult(kind, expected)
	for i, l := range packet.Layers() {
		cl, ok := l.(contextLayer)
		if !ok {
			// unreachable: every decoder in the chain produces a context layer
			return nil, fmt.Errorf("unexpected layer %s in %s", l.LayerType(), kind)
		}
		s := cl.Structure()
		name := s.Title
		if i == 0 {
			name = head
		}
		if err := result.add(name, s); err != nil {
			return nil, err
		}
	}
	// unreachable once the size check passed; the chain stops only after the last endpoint
	if result.Len() != expected {
		return nil, fmt.Errorf("%s decoded into %d contexts, want %d", kind, result.Len(), expected)
	}
	return result, nil
}
