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
	"strings"

	"github.com/samber/lo"

	"jinr.ru/greenlab/go-xhci/pkg/layers"
)

// Kind is one of the supported context data structures
type Kind int

const (
	KindSlot Kind = iota
	KindEndpoint
	KindInputControl
	KindDevice
	KindInput
)

const (
	DeviceContextName = "Device Context"
	InputContextName  = "Input Context"
	// DeviceContextSize is a Slot Context followed by 31 Endpoint Contexts
	DeviceContextSize = layers.ContextSize * (layers.EndpointContextCount + 1)
	// InputContextSize is an Input Control Context followed by a Device Context
	InputContextSize = layers.InputControlContextSize + DeviceContextSize
)

// Kinds lists all kinds in codename order of the command line help
var Kinds = []Kind{KindSlot, KindEndpoint, KindInputControl, KindDevice, KindInput}

// Code returns the codename of the kind
func (k Kind) Code() string {
	switch k {
	case KindSlot:
		return "slotctx"
	case KindEndpoint:
		return "endpctx"
	case KindInputControl:
		return "icctx"
	case KindDevice:
		return "devctx"
	case KindInput:
		return "ipctx"
	}
	return ""
}

// String returns the structure name
func (k Kind) String() string {
	switch k {
	case KindSlot:
		return layers.SlotContextName
	case KindEndpoint:
		return layers.EndpointContextName
	case KindInputControl:
		return layers.InputControlContextName
	case KindDevice:
		return DeviceContextName
	case KindInput:
		return InputContextName
	}
	return "Unknown"
}

// MinSize is the shortest buffer the kind accepts
func (k Kind) MinSize() int {
	switch k {
	case KindSlot, KindEndpoint, KindInputControl:
		return layers.ContextSize
	case KindDevice:
		return DeviceContextSize
	case KindInput:
		return InputContextSize
	}
	return 0
}

// Size is the full size of the structure
func (k Kind) Size() int {
	switch k {
	case KindSlot, KindEndpoint, KindInputControl:
		return layers.ContextSize
	case KindDevice:
		return DeviceContextSize
	case KindInput:
		return InputContextSize
	}
	return 0
}

// Composite reports whether the kind is made of several contexts
func (k Kind) Composite() bool {
	return k == KindDevice || k == KindInput
}

// MarshalText encodes the kind as its codename
func (k Kind) MarshalText() ([]byte, error) {
	if k.Code() == "" {
		return nil, ErrUnsupportedStructure{Code: k.String(), Valid: Codes()}
	}
	return []byte(k.Code()), nil
}

// UnmarshalText parses a codename
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Codes returns the codenames of all kinds
func Codes() []string {
	return lo.Map(Kinds, func(k Kind, _ int) string {
		return k.Code()
	})
}

// ParseKind trims and lowercases a codename and returns its kind
func ParseKind(code string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	kind, ok := lo.Find(Kinds, func(k Kind) bool {
		return k.Code() == normalized
	})
	if !ok {
		return 0, ErrUnsupportedStructure{Code: code, Valid: Codes()}
	}
	return kind, nil
}

// KindInfo describes a supported structure
type KindInfo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	MinSize     int    `json:"minSize"`
	Size        int    `json:"size"`
}

// Describe lists every supported structure
func Describe() []KindInfo {
	return lo.Map(Kinds, func(k Kind, _ int) KindInfo {
		return KindInfo{
			Code:        k.Code(),
			Description: k.String(),
			MinSize:     k.MinSize(),
			Size:        k.Size(),
		}
	})
}
