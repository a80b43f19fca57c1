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
	"fmt"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// SlotContext holds the fields of a Slot Context
type SlotContext struct {
	ContextEntries    uint8
	Hub               bool
	MultiTT           bool
	Speed             uint8
	RouteString       [RouteStringNibbles]uint8
	NumberOfPorts     uint8
	RootHubPortNumber uint8
	MaxExitLatency    uint16
	InterrupterTarget uint16
	TTThinkTime       uint8
	ParentPortNumber  uint8
	ParentHubSlotID   uint8
	SlotState         uint8
	USBDeviceAddress  uint8
	// AddressValid is false while the slot state bits are all zero
	AddressValid bool
}

type SlotContextLayer struct {
	layers.BaseLayer
	SlotContext
	window []byte
}

var SlotContextLayerType = gopacket.RegisterLayerType(SlotContextLayerNum,
	gopacket.LayerTypeMetadata{Name: "SlotContextLayerType", Decoder: gopacket.DecodeFunc(decodeSlotContextLayer)})

// LayerType returns the type of the Slot Context layer in the layer catalog
func (sc *SlotContextLayer) LayerType() gopacket.LayerType {
	return SlotContextLayerType
}

// DecodeFromBytes decodes the first 32 bytes as a Slot Context,
// the rest of data is the payload (the Endpoint Contexts of a Device Context)
func (sc *SlotContextLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := CheckLength(SlotContextName, data); err != nil {
		df.SetTruncated()
		return err
	}
	sc.BaseLayer = layers.BaseLayer{
		Contents: data[:ContextSize],
		Payload:  data[ContextSize:],
	}
	sc.window = contextWindow(data[:ContextSize])

	l := SlotContextLayout
	sc.ContextEntries = uint8(l.Raw(sc.window, FieldContextEntries))
	sc.Hub = l.Raw(sc.window, FieldHub) == 1
	sc.MultiTT = l.Raw(sc.window, FieldMultiTT) == 1
	sc.Speed = uint8(l.Raw(sc.window, FieldSpeed))
	sc.RouteString = MapRouteString([4]byte{sc.window[0], sc.window[1], sc.window[2], sc.window[3]})
	sc.NumberOfPorts = uint8(l.Raw(sc.window, FieldNumberOfPorts))
	sc.RootHubPortNumber = uint8(l.Raw(sc.window, FieldRootHubPortNumber))
	sc.MaxExitLatency = uint16(l.Raw(sc.window, FieldMaxExitLatency))
	sc.InterrupterTarget = uint16(l.Raw(sc.window, FieldInterrupterTarget))
	sc.TTThinkTime = uint8(l.Raw(sc.window, FieldTTThinkTime))
	sc.ParentPortNumber = uint8(l.Raw(sc.window, FieldParentPortNumber))
	sc.ParentHubSlotID = uint8(l.Raw(sc.window, FieldParentHubSlotID))
	sc.SlotState = uint8(l.Raw(sc.window, FieldSlotState))
	sc.USBDeviceAddress = uint8(l.Raw(sc.window, FieldUSBDeviceAddress))
	sc.AddressValid = sc.SlotState != 0
	return nil
}

// NextLayerType returns the Endpoint Context layer type when the payload holds Endpoint Contexts
func (sc *SlotContextLayer) NextLayerType() gopacket.LayerType {
	if len(sc.Payload) == 0 {
		return gopacket.LayerTypeZero
	}
	return EndpointContextLayerType
}

// TargetedPort is the last nibble of the route string
func (sc *SlotContextLayer) TargetedPort() uint8 {
	return sc.RouteString[RouteStringNibbles-1]
}

// TotalSize is the size in bytes of the Device Context entries in use
func (sc *SlotContextLayer) TotalSize() int {
	return (int(sc.ContextEntries) + 1) * ContextSize
}

func (sc *SlotContextLayer) texts() map[string]string {
	texts := map[string]string{
		FieldContextEntries:    fmt.Sprintf("%d. Total Size %d bytes.", sc.ContextEntries, sc.TotalSize()),
		FieldHub:               "This is a USB Function",
		FieldMultiTT:           "Multiple TT not supported or not enabled",
		FieldSpeed:             fmt.Sprintf("%04b", sc.Speed),
		FieldRouteString:       FormatRouteString(sc.RouteString),
		FieldTargetedPort:      fmt.Sprintf("0x%x", sc.TargetedPort()),
		FieldNumberOfPorts:     "Device is not a hub. Not Applicable",
		FieldRootHubPortNumber: fmt.Sprintf("%d", sc.RootHubPortNumber),
		FieldMaxExitLatency:    fmt.Sprintf("%dµs", sc.MaxExitLatency),
		FieldInterrupterTarget: fmt.Sprintf("%d", sc.InterrupterTarget),
		FieldTTThinkTime:       MapTTThinkTime(sc.TTThinkTime),
		FieldParentPortNumber:  DirectlyConnected,
		FieldParentHubSlotID:   DirectlyConnected,
		FieldSlotState:         MapSlotState(sc.SlotState),
		FieldUSBDeviceAddress:  "Invalid",
	}
	if sc.Hub {
		texts[FieldHub] = "Device is a HUB"
	}
	if sc.MultiTT {
		texts[FieldMultiTT] = "High-speed hub with Multiple TT support enabled."
	}
	if sc.NumberOfPorts > 0 {
		texts[FieldNumberOfPorts] = fmt.Sprintf("Device is a hub, supporting %d downstream ports", sc.NumberOfPorts)
	}
	if sc.ParentPortNumber != 0 {
		texts[FieldParentPortNumber] = fmt.Sprintf("Device is connected through downstream port %d of the parent hub.", sc.ParentPortNumber)
	}
	if sc.ParentHubSlotID != 0 {
		texts[FieldParentHubSlotID] = fmt.Sprintf("Device is connected through parent hub with Slot ID %d.", sc.ParentHubSlotID)
	}
	if sc.AddressValid {
		texts[FieldUSBDeviceAddress] = fmt.Sprintf("0x%x", sc.USBDeviceAddress)
	}
	return texts
}

// Structure returns the decoded field records and the bit grid of the context
func (sc *SlotContextLayer) Structure() *Structure {
	return buildStructure(SlotContextName, SlotContextLayout, sc.window, sc.texts())
}

func decodeSlotContextLayer(data []byte, p gopacket.PacketBuilder) error {
	sc := &SlotContextLayer{}
	err := sc.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(sc)
	return p.NextDecoder(EndpointDecoder(0))
}

// DecodeSlotContext decodes a standalone Slot Context
func DecodeSlotContext(data []byte) (*Structure, error) {
	sc := &SlotContextLayer{}
	if err := sc.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return sc.Structure(), nil
}
