/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package test

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Pallinder/go-randomdata"
	"github.com/imdario/mergo"
)

var sequentialNumber int64

// RandomName returns a pseudo-random suitable-for-ID name with a monotonic
// suffix to rule out collisions within a test run.
func RandomName() string {
	return strings.ToLower(fmt.Sprintf("%s-%d", randomdata.SillyName(), atomic.AddInt64(&sequentialNumber, 1)))
}

func mustMerge[T any](dst *T, overrides ...T) {
	for _, o := range overrides {
		if err := mergo.Merge(dst, o, mergo.WithOverride); err != nil {
			panic(fmt.Sprintf("failed to merge: %v", err))
		}
	}
}
