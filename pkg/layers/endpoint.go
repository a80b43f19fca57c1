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
	"math/big"
)

// EndpointContext holds the fields of an Endpoint Context
type EndpointContext struct {
	MaxESITPayloadHi    uint8
	Interval            uint8
	LinearStreamArray   bool
	MaxPrimaryStreams   uint8
	Mult                uint8
	EndpointState       uint8
	MaxPacketSize       uint16
	MaxBurstSize        uint8
	HostInitiateDisable bool
	EPType              uint8
	ErrorCount          uint8
	TRDequeuePointer    uint64 // bits 63:4 of the dequeue pointer
	DequeueCycleState   uint8
	MaxESITPayloadLo    uint16
	AverageTRBLength    uint16
}

type EndpointContextLayer struct {
	layers.BaseLayer
	EndpointContext
	// Index is the position of the context inside a Device Context, -1 for a standalone context
	Index  int
	window []byte
}

var EndpointContextLayerType = gopacket.RegisterLayerType(EndpointContextLayerNum,
	gopacket.LayerTypeMetadata{Name: "EndpointContextLayerType", Decoder: EndpointDecoder(0)})

// LayerType returns the type of the Endpoint Context layer in the layer catalog
func (ec *EndpointContextLayer) LayerType() gopacket.LayerType {
	return EndpointContextLayerType
}

// DecodeFromBytes decodes the first 32 bytes as an Endpoint Context
func (ec *EndpointContextLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if err := CheckLength(EndpointContextName, data); err != nil {
		df.SetTruncated()
		return err
	}
	ec.BaseLayer = layers.BaseLayer{
		Contents: data[:ContextSize],
		Payload:  data[ContextSize:],
	}
	ec.window = contextWindow(data[:ContextSize])

	l := EndpointContextLayout
	ec.MaxESITPayloadHi = uint8(l.Raw(ec.window, FieldMaxESITPayloadHi))
	ec.Interval = uint8(l.Raw(ec.window, FieldInterval))
	ec.LinearStreamArray = l.Raw(ec.window, FieldLinearStreamArray) == 1
	ec.MaxPrimaryStreams = uint8(l.Raw(ec.window, FieldMaxPrimaryStreams))
	ec.Mult = uint8(l.Raw(ec.window, FieldMult))
	ec.EndpointState = uint8(l.Raw(ec.window, FieldEndpointState))
	ec.MaxPacketSize = uint16(l.Raw(ec.window, FieldMaxPacketSize))
	ec.MaxBurstSize = uint8(l.Raw(ec.window, FieldMaxBurstSize))
	ec.HostInitiateDisable = l.Raw(ec.window, FieldHostInitiateDisable) == 1
	ec.EPType = uint8(l.Raw(ec.window, FieldEPType))
	ec.ErrorCount = uint8(l.Raw(ec.window, FieldErrorCount))
	ec.TRDequeuePointer = l.Raw(ec.window, FieldTRDequeuePointer)
	ec.DequeueCycleState = uint8(l.Raw(ec.window, FieldDequeueCycleState))
	ec.MaxESITPayloadLo = uint16(l.Raw(ec.window, FieldMaxESITPayloadLo))
	ec.AverageTRBLength = uint16(l.Raw(ec.window, FieldAverageTRBLength))
	return nil
}

// NextLayerType returns the Endpoint Context layer type until all 31 contexts are decoded
func (ec *EndpointContextLayer) NextLayerType() gopacket.LayerType {
	if len(ec.Payload) == 0 || ec.Index < 0 || ec.Index+1 >= EndpointContextCount {
		return gopacket.LayerTypeZero
	}
	return EndpointContextLayerType
}

// MaxESITPayload joins the high and low parts of the Max ESIT Payload
func (ec *EndpointContextLayer) MaxESITPayload() uint32 {
	return uint32(ec.MaxESITPayloadHi)<<16 | uint32(ec.MaxESITPayloadLo)
}

// PrimaryStreams returns the number of Primary Stream Array entries, 2^(MaxPStreams+1)
func (ec *EndpointContextLayer) PrimaryStreams() *big.Int {
	if ec.MaxPrimaryStreams == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(ec.MaxPrimaryStreams)+1)
}

// Title is the member name of the context
func (ec *EndpointContextLayer) Title() string {
	if ec.Index < 0 {
		return EndpointContextName
	}
	return EndpointMemberName(ec.Index)
}

func (ec *EndpointContextLayer) texts() map[string]string {
	width := int(ec.MaxPrimaryStreams) + 1
	texts := map[string]string{
		FieldLinearStreamArray:   ReservedText,
		FieldMaxPrimaryStreams:   "Streams not supported or Endpoint Type is SS Control, Isoch, Interrupt, or not a SuperSpeed endpoint.",
		FieldMult:                fmt.Sprintf("LEC Depended. If LEC = 0, then Max Number of Bursts = %d. Else, Reserved", ec.Mult+1),
		FieldEndpointState:       MapEndpointState(ec.EndpointState),
		FieldMaxBurstSize:        fmt.Sprintf("%d", int(ec.MaxBurstSize)+1),
		FieldHostInitiateDisable: "Host-initiated Stream selection is enabled; normal Stream operation.",
		FieldEPType:              MapEPType(ec.EPType),
		FieldErrorCount:          "Unlimited retries; no bus error counting.",
		FieldTRDequeuePointer:    fmt.Sprintf("0x%x", ec.TRDequeuePointer),
		FieldMaxESITPayload:      fmt.Sprintf("%d", ec.MaxESITPayload()),
	}
	if ec.MaxPrimaryStreams != 0 {
		texts[FieldMaxPrimaryStreams] = fmt.Sprintf("Primary Stream Array Contains %s entries. Width = %d", ec.PrimaryStreams(), width)
		if ec.LinearStreamArray {
			texts[FieldLinearStreamArray] = "Stream ID = index into Primary Stream Array. Secondary Stream Arrays disabled. MaxPStreams: 1–15."
		} else {
			texts[FieldLinearStreamArray] = fmt.Sprintf("Stream ID split: low %d → Primary, high bits → Secondary Stream Array. MaxPStreams: 1–7.", width)
		}
	}
	if ec.HostInitiateDisable {
		texts[FieldHostInitiateDisable] = "Host-initiated Stream selection is disabled; device controls Stream transitions."
	}
	if ec.ErrorCount != 0 {
		texts[FieldErrorCount] = fmt.Sprintf("Allow %d failures before halting. On final error, endpoint halts and error event is generated.", ec.ErrorCount)
	}
	return texts
}

// Structure returns the decoded field records and the bit grid of the context
func (ec *EndpointContextLayer) Structure() *Structure {
	return buildStructure(ec.Title(), EndpointContextLayout, ec.window, ec.texts())
}

// EndpointDecoder decodes the Endpoint Context at the given index of a Device Context
// and chains to the next index until all Endpoint Contexts are decoded
type EndpointDecoder int

func (d EndpointDecoder) Decode(data []byte, p gopacket.PacketBuilder) error {
	ec := &EndpointContextLayer{Index: int(d)}
	err := ec.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(ec)
	if int(d)+1 >= EndpointContextCount {
		return nil
	}
	return p.NextDecoder(d + 1)
}

// DecodeEndpointContext decodes a standalone Endpoint Context.
// A non-negative index names the context after its Device Context position.
func DecodeEndpointContext(data []byte, index int) (*Structure, error) {
	if index >= EndpointContextCount {
		return nil, ErrEndpointIndex{Index: index}
	}
	ec := &EndpointContextLayer{Index: index}
	if err := ec.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return ec.Structure(), nil
}
