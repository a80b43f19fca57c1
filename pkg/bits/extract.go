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

package bits

import (
	mathbits "math/bits"
)

// Segment is the part of a field that lives in one byte of a structure.
// Mask selects the bits of that byte which belong to the field.
type Segment struct {
	Byte int
	Mask uint8
}

// Width returns the number of bits covered by the segment
func (s Segment) Width() int {
	return mathbits.OnesCount8(s.Mask)
}

// Compact extracts the bits of b selected by mask and packs them
// into the low bits of the result keeping their order.
func Compact(b, mask uint8) uint8 {
	var value uint8
	for i := 7; i >= 0; i-- {
		bit := uint8(1) << i
		if mask&bit == 0 {
			continue
		}
		value <<= 1
		if b&bit != 0 {
			value |= 1
		}
	}
	return value
}

// Width sums the widths of the segments
func Width(segments []Segment) int {
	width := 0
	for _, s := range segments {
		width += s.Width()
	}
	return width
}

// Extract concatenates the masked bits of every segment, the first segment
// being the most significant. Fields wider than 64 bits keep only their
// low 64 bits. The caller guarantees that every segment byte is within data.
func Extract(data []byte, segments []Segment) uint64 {
	var value uint64
	for _, s := range segments {
		value = value<<uint(s.Width()) | uint64(Compact(data[s.Byte], s.Mask))
	}
	return value
}

// ByteSpan returns the lowest and the highest byte offsets touched by the segments
func ByteSpan(segments []Segment) (int, int) {
	if len(segments) == 0 {
		return 0, 0
	}
	first, last := segments[0].Byte, segments[0].Byte
	for _, s := range segments[1:] {
		if s.Byte < first {
			first = s.Byte
		}
		if s.Byte > last {
			last = s.Byte
		}
	}
	return first, last
}

// Bytes returns full-byte segments for data[from:to], most significant byte first
// when msbFirst is set.
func Bytes(from, to int, msbFirst bool) []Segment {
	segments := make([]Segment, 0, to-from)
	for i := from; i < to; i++ {
		segments = append(segments, Segment{Byte: i, Mask: 0xff})
	}
	if msbFirst {
		for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
			segments[i], segments[j] = segments[j], segments[i]
		}
	}
	return segments
}
