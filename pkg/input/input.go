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

package input

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"jinr.ru/greenlab/go-xhci/pkg/bits"
)

var ErrNoData = errors.New("No data given")

type ErrBadToken struct {
	Token string
	Index int
	Word  bool
}

func (e ErrBadToken) Error() string {
	unit := "byte"
	if e.Word {
		unit = "32-bit word"
	}
	return fmt.Sprintf("Token %d %q is not a hex %s", e.Index, e.Token, unit)
}

// Tokenize splits text on white space and commas
func Tokenize(text string) []string {
	return strings.Fields(strings.ReplaceAll(text, ",", " "))
}

// ParseTokens parses hex tokens as bytes, or as little-endian 32-bit words when word is set
func ParseTokens(tokens []string, word bool) ([]byte, error) {
	tokens = lo.FlatMap(tokens, func(t string, _ int) []string {
		return Tokenize(t)
	})
	if len(tokens) == 0 {
		return nil, ErrNoData
	}
	bitSize := 8
	if word {
		bitSize = bits.WordBits
	}
	values := make([]uint32, 0, len(tokens))
	for i, token := range tokens {
		digits := strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
		value, err := strconv.ParseUint(digits, 16, bitSize)
		if err != nil || digits == "" {
			return nil, ErrBadToken{Token: token, Index: i, Word: word}
		}
		values = append(values, uint32(value))
	}
	if word {
		return bits.WordsToBytes(values), nil
	}
	return lo.Map(values, func(v uint32, _ int) byte {
		return byte(v)
	}), nil
}

// Parse parses hex data separated by spaces and/or commas
func Parse(text string, word bool) ([]byte, error) {
	return ParseTokens(Tokenize(text), word)
}

// ReadFile parses the hex data stored in a text file
func ReadFile(path string, word bool) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't read data file: %w", err)
	}
	return Parse(string(content), word)
}

// Format renders bytes as space separated hex tokens, the form Parse accepts
func Format(data []byte) string {
	return strings.Join(lo.Map(data, func(b byte, _ int) string {
		return fmt.Sprintf("%02x", b)
	}), " ")
}
