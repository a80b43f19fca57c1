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
	"encoding/binary"
	"strings"
)

const (
	WordSize = 4
	WordBits = 32
)

// BitRow is a word split into single bits, most significant bit first.
// It is only used for rendering, decoding works on masks.
type BitRow [WordBits]uint8

// BytesToWords groups little-endian bytes into 32-bit words.
// The byte count must be a positive multiple of 4.
func BytesToWords(data []byte) ([]uint32, error) {
	if len(data) == 0 || len(data)%WordSize != 0 {
		return nil, ErrInvalidLength{Length: len(data)}
	}
	words := make([]uint32, 0, len(data)/WordSize)
	for i := 0; i < len(data); i += WordSize {
		words = append(words, binary.LittleEndian.Uint32(data[i:i+WordSize]))
	}
	return words, nil
}

// WordsToBytes expands 32-bit words into their little-endian bytes.
// This is how input given in word mode is turned into a byte buffer.
func WordsToBytes(words []uint32) []byte {
	data := make([]byte, len(words)*WordSize)
	for i, word := range words {
		binary.LittleEndian.PutUint32(data[i*WordSize:], word)
	}
	return data
}

// WordToBitRow returns the 32 bits of a word, bit 31 first
func WordToBitRow(word uint32) BitRow {
	var row BitRow
	for i := 0; i < WordBits; i++ {
		row[i] = uint8((word >> (WordBits - 1 - i)) & 0x1)
	}
	return row
}

// Reverse returns the row with bit 0 first
func (r BitRow) Reverse() BitRow {
	var reversed BitRow
	for i := range r {
		reversed[WordBits-1-i] = r[i]
	}
	return reversed
}

// At returns bit n of the word the row was built from
func (r BitRow) At(n int) uint8 {
	return r[WordBits-1-n]
}

func (r BitRow) String() string {
	var sb strings.Builder
	for _, bit := range r {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}
