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
)

// ErrInsufficientData returned when a buffer is shorter than the structure it must hold
type ErrInsufficientData struct {
	Structure string
	Required  int
	Actual    int
}

func (e ErrInsufficientData) Error() string {
	return fmt.Sprintf("%s expects at least %d bytes of data. Got %d bytes", e.Structure, e.Required, e.Actual)
}

// ErrEndpointIndex returned for an endpoint context number outside 0..30
type ErrEndpointIndex struct {
	Index int
}

func (e ErrEndpointIndex) Error() string {
	return fmt.Sprintf("Endpoint context number %d out of range 0..%d", e.Index, EndpointContextCount-1)
}

// CheckLength validates that a buffer holds a whole 32-byte context
func CheckLength(structure string, data []byte) error {
	if len(data) < ContextSize {
		return ErrInsufficientData{Structure: structure, Required: ContextSize, Actual: len(data)}
	}
	return nil
}
