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

	"jinr.ru/greenlab/go-xhci/pkg/bits"
)

// FieldLayout places a field inside a context. Segments are listed
// most significant first. Derived fields reuse bits owned by other fields
// and are left out of the bit ownership map.
type FieldLayout struct {
	Name     string
	Short    string // label used in the bit grid, Name when empty
	Segments []bits.Segment
	Reserved bool
	Derived  bool
}

// Width returns the field width in bits
func (f *FieldLayout) Width() int {
	return bits.Width(f.Segments)
}

// Label returns the bit grid label of the field
func (f *FieldLayout) Label() string {
	if f.Reserved {
		return "RsvdZ"
	}
	if f.Short != "" {
		return f.Short
	}
	return f.Name
}

// Layout is the hand-specified field layout of one context data structure
type Layout struct {
	Name   string
	Size   int
	Fields []*FieldLayout
	byName map[string]*FieldLayout
	owners [][8]*FieldLayout
}

func newLayout(name string, size int, fields []*FieldLayout) *Layout {
	l := &Layout{
		Name:   name,
		Size:   size,
		Fields: fields,
		byName: make(map[string]*FieldLayout),
		owners: make([][8]*FieldLayout, size),
	}
	for _, f := range fields {
		if !f.Reserved {
			if _, ok := l.byName[f.Name]; ok {
				panic(fmt.Sprintf("%s layout: duplicate field %s", name, f.Name))
			}
			l.byName[f.Name] = f
		}
		if f.Derived {
			continue
		}
		for _, s := range f.Segments {
			for bit := 0; bit < 8; bit++ {
				if s.Mask&(1<<uint(bit)) == 0 {
					continue
				}
				if l.owners[s.Byte][bit] != nil {
					panic(fmt.Sprintf("%s layout: byte %d bit %d owned by %s and %s",
						name, s.Byte, bit, l.owners[s.Byte][bit].Name, f.Name))
				}
				l.owners[s.Byte][bit] = f
			}
		}
	}
	return l
}

// Field returns the layout of a named field or nil
func (l *Layout) Field(name string) *FieldLayout {
	return l.byName[name]
}

// Owner returns the field owning the given bit of the given byte or nil
func (l *Layout) Owner(byteIndex, bit int) *FieldLayout {
	if byteIndex < 0 || byteIndex >= l.Size || bit < 0 || bit > 7 {
		return nil
	}
	return l.owners[byteIndex][bit]
}

// Raw extracts the value of a named field from a context window
func (l *Layout) Raw(window []byte, name string) uint64 {
	f := l.Field(name)
	if f == nil {
		panic(fmt.Sprintf("%s layout: unknown field %s", l.Name, name))
	}
	return bits.Extract(window, f.Segments)
}

func seg(b int, mask uint8) bits.Segment {
	return bits.Segment{Byte: b, Mask: mask}
}

func field(name string, segments ...bits.Segment) *FieldLayout {
	return &FieldLayout{Name: name, Segments: segments}
}

func short(name, label string, segments ...bits.Segment) *FieldLayout {
	return &FieldLayout{Name: name, Short: label, Segments: segments}
}

func derived(name string, segments ...bits.Segment) *FieldLayout {
	return &FieldLayout{Name: name, Segments: segments, Derived: true}
}

func reserved(segments ...bits.Segment) *FieldLayout {
	return &FieldLayout{Name: ReservedText, Segments: segments, Reserved: true}
}

// Slot Context field names
const (
	FieldContextEntries    = "Context Entries"
	FieldHub               = "Hub"
	FieldMultiTT           = "Multi-TT"
	FieldSpeed             = "Speed"
	FieldRouteString       = "Route String"
	FieldTargetedPort      = "Targeted Downstream Port Number"
	FieldNumberOfPorts     = "Number of Ports"
	FieldRootHubPortNumber = "Root Hub Port Number"
	FieldMaxExitLatency    = "Max Exit Latency"
	FieldInterrupterTarget = "Interrupter Target"
	FieldTTThinkTime       = "TT Think Time"
	FieldParentPortNumber  = "Parent Port Number"
	FieldParentHubSlotID   = "Parent Hub Slot ID"
	FieldSlotState         = "Slot State"
	FieldUSBDeviceAddress  = "USB Device Address"
)

// Endpoint Context field names
const (
	FieldMaxESITPayloadHi    = "Max ESIT Payload Hi"
	FieldInterval            = "Interval"
	FieldLinearStreamArray   = "Linear Stream Array"
	FieldMaxPrimaryStreams   = "Max Primary Streams"
	FieldMult                = "Mult"
	FieldEndpointState       = "Endpoint State"
	FieldMaxPacketSize       = "Max Packet Size"
	FieldMaxBurstSize        = "Max Burst Size"
	FieldHostInitiateDisable = "Host Initiate Disable"
	FieldEPType              = "Endpoint Type"
	FieldErrorCount          = "Error Count"
	FieldTRDequeuePointer    = "TR Dequeue Pointer"
	FieldDequeueCycleState   = "Dequeue Cycle State"
	FieldMaxESITPayloadLo    = "Max ESIT Payload Lo"
	FieldAverageTRBLength    = "Average TRB Length"
	FieldMaxESITPayload      = "Max ESIT Payload"
)

// Input Control Context field names
const (
	FieldConfigurationValue = "Configuration Value"
	FieldInterfaceNumber    = "Interface Number"
	FieldAlternateSetting   = "Alternate Setting"
)

// DropFlagName returns the name of drop context flag n
func DropFlagName(n int) string {
	return fmt.Sprintf("D%d", n)
}

// AddFlagName returns the name of add context flag n
func AddFlagName(n int) string {
	return fmt.Sprintf("A%d", n)
}

// SlotContextLayout follows the byte lanes of the Slot Context
var SlotContextLayout = newLayout(SlotContextName, ContextSize, []*FieldLayout{
	// 03-00H
	field(FieldContextEntries, seg(0, 0xf8)),
	field(FieldHub, seg(0, 0x04)),
	short(FieldMultiTT, "MTT", seg(0, 0x02)),
	reserved(seg(0, 0x01)),
	field(FieldSpeed, seg(1, 0xf0)),
	field(FieldRouteString, seg(1, 0x0f), seg(2, 0xff), seg(3, 0xff)),
	derived(FieldTargetedPort, seg(1, 0x0f)),
	// 07-04H
	field(FieldNumberOfPorts, seg(4, 0xff)),
	field(FieldRootHubPortNumber, seg(5, 0xff)),
	field(FieldMaxExitLatency, seg(7, 0xff), seg(6, 0xff)),
	// 0B-08H
	field(FieldInterrupterTarget, seg(8, 0xff), seg(9, 0xc0)),
	reserved(seg(9, 0x3c)),
	short(FieldTTThinkTime, "TTT", seg(9, 0x03)),
	short(FieldParentPortNumber, "TT Port Number", seg(10, 0xff)),
	short(FieldParentHubSlotID, "TT Hub Slot ID", seg(11, 0xff)),
	// 0F-0CH
	field(FieldSlotState, seg(12, 0xf8)),
	reserved(seg(12, 0x07), seg(13, 0xff), seg(14, 0xff)),
	field(FieldUSBDeviceAddress, seg(15, 0xff)),
	// 1F-10H
	reserved(bits.Bytes(16, 32, true)...),
})

// EndpointContextLayout follows the byte lanes of the Endpoint Context
var EndpointContextLayout = newLayout(EndpointContextName, ContextSize, []*FieldLayout{
	// 03-00H
	field(FieldMaxESITPayloadHi, seg(0, 0xff)),
	field(FieldInterval, seg(1, 0xfe)),
	short(FieldLinearStreamArray, "LSA", seg(1, 0x01)),
	field(FieldMaxPrimaryStreams, seg(2, 0xfc)),
	field(FieldMult, seg(2, 0x03)),
	reserved(seg(3, 0xf8)),
	field(FieldEndpointState, seg(3, 0x07)),
	// 07-04H
	field(FieldMaxPacketSize, seg(4, 0xff), seg(5, 0xff)),
	field(FieldMaxBurstSize, seg(6, 0xff)),
	short(FieldHostInitiateDisable, "HID", seg(7, 0x80)),
	reserved(seg(7, 0x40)),
	short(FieldEPType, "EP Type", seg(7, 0x38)),
	short(FieldErrorCount, "CErr", seg(7, 0x06)),
	reserved(seg(7, 0x01)),
	// 0F-08H
	field(FieldTRDequeuePointer, append(bits.Bytes(9, 16, true), seg(8, 0xf0))...),
	reserved(seg(8, 0x0e)),
	short(FieldDequeueCycleState, "DCS", seg(8, 0x01)),
	// 13-10H
	field(FieldMaxESITPayloadLo, seg(16, 0xff), seg(17, 0xff)),
	field(FieldAverageTRBLength, seg(18, 0xff), seg(19, 0xff)),
	derived(FieldMaxESITPayload, seg(0, 0xff), seg(16, 0xff), seg(17, 0xff)),
	// 1F-14H
	reserved(bits.Bytes(20, 32, true)...),
})

// InputControlContextLayout follows the little-endian words of the Input Control Context
var InputControlContextLayout = newLayout(InputControlContextName, InputControlContextSize, inputControlFields())

// flagSegment returns the segment of bit n of the little-endian word at offset
func flagSegment(offset, n int) bits.Segment {
	return seg(offset+n/8, 1<<uint(n%8))
}

func inputControlFields() []*FieldLayout {
	fields := []*FieldLayout{}
	for n := 31; n >= 2; n-- {
		fields = append(fields, field(DropFlagName(n), flagSegment(0, n)))
	}
	fields = append(fields, reserved(flagSegment(0, 1), flagSegment(0, 0)))
	for n := 31; n >= 0; n-- {
		fields = append(fields, field(AddFlagName(n), flagSegment(4, n)))
	}
	fields = append(fields,
		reserved(bits.Bytes(8, 28, true)...),
		field(FieldConfigurationValue, seg(28, 0xff)),
		field(FieldInterfaceNumber, seg(29, 0xff)),
		field(FieldAlternateSetting, seg(30, 0xff)),
		reserved(seg(31, 0xff)),
	)
	return fields
}
