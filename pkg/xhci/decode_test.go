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
	"errors"
	"testing"

	"jinr.ru/greenlab/go-xhci/pkg/bits"
	"jinr.ru/greenlab/go-xhci/pkg/layers"
)

func TestDecodeSingleContexts(t *testing.T) {
	tests := []struct {
		kind  Kind
		size  int
		title string
	}{
		{KindSlot, 32, "Slot Context"},
		{KindEndpoint, 64, "Endpoint Context"},
		{KindInputControl, 32, "Input Control Context"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.Code(), func(t *testing.T) {
			result, err := Decode(tt.kind, make([]byte, tt.size))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if result.Kind != tt.kind || result.Len() != 1 || result.Names()[0] != tt.title {
				t.Errorf("result %v %v", result.Kind, result.Names())
			}
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	result, err := Decode(KindEndpoint, make([]byte, 32), WithEndpointIndex(3))
	if err != nil {
		t.Fatal(err)
	}
	if result.Names()[0] != "Endpoint Context 2 - OUT" {
		t.Errorf("name %q", result.Names()[0])
	}
	result, err = Decode(KindSlot, make([]byte, 32), WithHead("Hub Slot"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Names()[0] != "Hub Slot" {
		t.Errorf("name %q", result.Names()[0])
	}
}

func TestDecodeChecksLengthFirst(t *testing.T) {
	tests := []struct {
		kind     Kind
		size     int
		required int
	}{
		{KindSlot, 0, 32},
		{KindSlot, 16, 32},
		{KindSlot, 31, 32},
		{KindEndpoint, 20, 32},
		{KindEndpoint, 31, 32},
		{KindInputControl, 20, 32},
		{KindDevice, 1000, 1024},
		{KindInput, 1024, 1056},
	}
	for _, tt := range tests {
		_, err := Decode(tt.kind, make([]byte, tt.size))
		var e layers.ErrInsufficientData
		if !errors.As(err, &e) || e.Required != tt.required || e.Actual != tt.size {
			t.Errorf("%s with %d bytes: error = %v", tt.kind.Code(), tt.size, err)
		}
	}
}

func TestDecodeCode(t *testing.T) {
	result, err := DecodeCode(" DEVCTX ", make([]byte, DeviceContextSize))
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != KindDevice || result.Len() != 32 {
		t.Errorf("result %v with %d members", result.Kind, result.Len())
	}

	_, err = DecodeCode("nope", make([]byte, DeviceContextSize))
	var e ErrUnsupportedStructure
	if !errors.As(err, &e) || len(e.Valid) != len(Kinds) {
		t.Errorf("error = %v", err)
	}

	_, err = Decode(Kind(99), make([]byte, 32))
	if !errors.As(err, &e) {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestDecodeWords(t *testing.T) {
	words := []uint32{0x56341228, 0, 0, 0, 0, 0, 0, 0}
	result, err := DecodeWords(KindSlot, words)
	if err != nil {
		t.Fatal(err)
	}
	slot, _ := result.Member(layers.SlotContextName)
	if slot.Text(layers.FieldRouteString) != "0x6 - 0x5 - 0x4 - 0x3 - 0x2" {
		t.Errorf("route string %q", slot.Text(layers.FieldRouteString))
	}
	if slot.Text(layers.FieldContextEntries) != "5. Total Size 192 bytes." {
		t.Errorf("context entries %q", slot.Text(layers.FieldContextEntries))
	}
	if got := slot.Grid[0].Word; got != words[0] {
		t.Errorf("grid word 0x%08x", got)
	}
	if got := slot.Grid[0].Bits; got != bits.WordToBitRow(words[0]) {
		t.Errorf("grid bits %s", got)
	}
}
