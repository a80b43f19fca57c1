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
	"strings"
)

// xHCI Specification Rev 1.2b, section 6.2

var slotStates = map[uint8]string{
	0: "Disabled/Enabled State",
	1: "Default State",
	2: "Addressed State",
	3: "Configured State",
}

var endpointStates = map[uint8]string{
	0: "Disabled",
	1: "Running",
	2: "Halted",
	3: "Stopped",
	4: "Error",
}

var endpointTypes = map[uint8]string{
	1: "Isoch-Out",
	2: "Bulk-Out",
	3: "Interrupt-Out",
	4: "Control-Bidirectional",
	5: "Isoch-In",
	6: "Bulk-In",
	7: "Interrupt-In",
}

var ttThinkTimes = map[uint8]string{
	0: "TT requires at most 8 FS bit times of inter-transaction gap on a full-/low-speed downstream bus.",
	1: "TT requires at most 16 FS bit times.",
	2: "TT requires at most 24 FS bit times.",
	3: "TT requires at most 32 FS bit times.",
}

const (
	ReservedText        = "Reserved"
	InvalidTypeText     = "Invalid Type"
	InvalidInputText    = "Invalid Input Given"
	DirectlyConnected   = "Device is directly connected to root or is high-speed/top-level."
	RouteStringNibbles  = 5
	RouteStringBits     = 20
	BiDirectionalSuffix = "Bi-Directional"
)

// MapSlotState maps a 5-bit slot state code
func MapSlotState(code uint8) string {
	if s, ok := slotStates[code]; ok {
		return s
	}
	return ReservedText
}

// MapEndpointState maps a 3-bit endpoint state code
func MapEndpointState(code uint8) string {
	if s, ok := endpointStates[code]; ok {
		return s
	}
	return ReservedText
}

// MapEPType maps a 3-bit endpoint type code. Code 0 is not a valid endpoint type.
func MapEPType(code uint8) string {
	if s, ok := endpointTypes[code]; ok {
		return s
	}
	return InvalidTypeText
}

// MapTTThinkTime maps a 2-bit TT think time code
func MapTTThinkTime(code uint8) string {
	if s, ok := ttThinkTimes[code]; ok {
		return s
	}
	return InvalidInputText
}

// MapRouteString splits the route string held by bytes 1-3 of the first
// Slot Context word into its five 4-bit tiers, tier 1 first.
// routeBytes[0] is not part of the route string.
func MapRouteString(routeBytes [4]byte) [RouteStringNibbles]uint8 {
	return [RouteStringNibbles]uint8{
		routeBytes[3] & 0xf, (routeBytes[3] >> 4) & 0xf,
		routeBytes[2] & 0xf, (routeBytes[2] >> 4) & 0xf,
		routeBytes[1] & 0xf,
	}
}

// RouteNibblesValue folds route string tiers back into the 20-bit route string
func RouteNibblesValue(nibbles [RouteStringNibbles]uint8) uint32 {
	var value uint32
	for i, nibble := range nibbles {
		value |= uint32(nibble&0xf) << (4 * uint(i))
	}
	return value
}

// FormatRouteString renders the tiers as "0x6 - 0x5 - 0x4 - 0x3 - 0x2"
func FormatRouteString(nibbles [RouteStringNibbles]uint8) string {
	parts := make([]string, 0, RouteStringNibbles)
	for _, nibble := range nibbles {
		parts = append(parts, fmt.Sprintf("0x%x", nibble))
	}
	return strings.Join(parts, " - ")
}

// RsvdZ returns the text shown in place of a reserved field
func RsvdZ(numberOfBits int) string {
	if numberOfBits <= 0 {
		return ""
	}
	return strings.Repeat("0", numberOfBits)
}

// EndpointLabel names the endpoint context at the given index of a Device Context.
// Index 0 is the bi-directional default control endpoint, odd indexes are OUT
// and even indexes are IN endpoints.
func EndpointLabel(index int) string {
	if index == 0 {
		return "0 - " + BiDirectionalSuffix
	}
	direction := "IN"
	if index%2 == 1 {
		direction = "OUT"
	}
	return fmt.Sprintf("%d - %s", index/2+index%2, direction)
}

// EndpointMemberName is the name of the endpoint context member at the given index
func EndpointMemberName(index int) string {
	return fmt.Sprintf("%s %s", EndpointContextName, EndpointLabel(index))
}

// ContextFlagTarget names the context selected by add/drop context flag n
// of an Input Control Context. Flag 0 selects the Slot Context.
func ContextFlagTarget(n int) string {
	if n == 0 {
		return SlotContextName
	}
	return EndpointMemberName(n - 1)
}
