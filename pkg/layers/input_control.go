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

package layers

import (
	"encoding/binary"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// FirstDropFlag is the lowest drop flag, D0 and D1 are reserved
	FirstDropFlag = 2
	ContextFlags  = 32
)

// InputControlContext holds the fields of an Input Control Context
type InputControlContext struct {
	DropFlags          uint32
	AddFlags           uint32
	ConfigurationValue uint8
	InterfaceNumber    uint8
	AlternateSetting   uint8
}

// Drop reports whether the context with Device Context index n is dropped
func (icc *InputControlContext) Drop(n int) bool {
	return n >= FirstDropFlag && n < ContextFlags && icc.DropFlags&(1<<uint(n)) != 0
}

// Add reports whether the context with Device Context index n is added
func (icc *InputControlContext) Add(n int) bool {
	return n >= 0 && n < ContextFlags && icc.AddFlags&(1<<uint(n)) != 0
}

type InputControlContextLayer struct {
	layers.BaseLayer
	InputControlContext
	window []byte
}

var InputControlContextLayerType = gopacket.RegisterLayerType(InputControlContextLayerNum,
	gopacket.LayerTypeMetadata{Name: "InputControlContextLayerType", Decoder: gopacket.DecodeFunc(decodeInputControlContextLayer)})

// LayerType returns the type of the Input Control Context layer in the layer catalog
func (icc *InputControlContextLayer) LayerType() gopacket.LayerType {
	return InputControlContextLayerType
}

// DecodeFromBytes decodes the first 32 bytes as an Input Control Context,
// the rest of data is the payload (the Device Context of an Input Context)
func (icc *InputControlContextLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := CheckLength(InputControlContextName, data); err != nil {
		df.SetTruncated()
		return err
	}
	icc.BaseLayer = layers.BaseLayer{
		Contents: data[:InputControlContextSize],
		Payload:  data[InputControlContextSize:],
	}
	icc.window = contextWindow(data[:InputControlContextSize])

	// drop flags D0 and D1 are reserved
	icc.DropFlags = binary.LittleEndian.Uint32(icc.window[0:4]) &^ 0x3
	icc.AddFlags = binary.LittleEndian.Uint32(icc.window[4:8])
	l := InputControlContextLayout
	icc.ConfigurationValue = uint8(l.Raw(icc.window, FieldConfigurationValue))
	icc.InterfaceNumber = uint8(l.Raw(icc.window, FieldInterfaceNumber))
	icc.AlternateSetting = uint8(l.Raw(icc.window, FieldAlternateSetting))
	return nil
}

// NextLayerType returns the Slot Context layer type when the payload holds a Device Context
func (icc *InputControlContextLayer) NextLayerType() gopacket.LayerType {
	if len(icc.Payload) == 0 {
		return gopacket.LayerTypeZero
	}
	return SlotContextLayerType
}

func (icc *InputControlContextLayer) texts() map[string]string {
	texts := make(map[string]string, 2*ContextFlags)
	for n := 0; n < ContextFlags; n++ {
		if n >= FirstDropFlag {
			texts[DropFlagName(n)] = "-"
			if icc.Drop(n) {
				texts[DropFlagName(n)] = "Drop " + ContextFlagTarget(n)
			}
		}
		texts[AddFlagName(n)] = "-"
		if icc.Add(n) {
			texts[AddFlagName(n)] = "Add " + ContextFlagTarget(n)
		}
	}
	return texts
}

// Structure returns the decoded field records and the bit grid of the context
func (icc *InputControlContextLayer) Structure() *Structure {
	return buildStructure(InputControlContextName, InputControlContextLayout, icc.window, icc.texts())
}

func decodeInputControlContextLayer(data []byte, p gopacket.PacketBuilder) error {
	icc := &InputControlContextLayer{}
	err := icc.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(icc)
	return p.NextDecoder(gopacket.DecodeFunc(decodeSlotContextLayer))
}

// DecodeInputControlContext decodes a standalone Input Control Context
func DecodeInputControlContext(data []byte) (*Structure, error) {
	icc := &InputControlContextLayer{}
	if err := icc.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return icc.Structure(), nil
}
