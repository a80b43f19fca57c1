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

const (
	// Layer numbers of the xHCI contexts in the gopacket layer catalog
	SlotContextLayerNum         = 2010
	EndpointContextLayerNum     = 2011
	InputControlContextLayerNum = 2012
)

const (
	// ContextSize is the size of every 32-byte context data structure
	ContextSize = 32
	InputControlContextSize = ContextSize
	// EndpointContextCount is the number of Endpoint Contexts in a Device Context
	EndpointContextCount = 31
)

const (
	SlotContextName         = "Slot Context"
	EndpointContextName     = "Endpoint Context"
	InputControlContextName = "Input Control Context"
)
