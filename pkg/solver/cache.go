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

package solver

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/patrickmn/go-cache"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
)

// Cache memoizes solved schedules keyed by a structural hash of the inputs.
// Solving is a pure function of (template, inventory), so memoization cannot
// change observable behavior. Cached schedules are shared; callers must treat
// them as immutable apart from the wall-clock annotation layer, which is
// idempotent for a given template.
type Cache struct {
	cache *cache.Cache
}

// NewCache returns a Cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{cache: cache.New(ttl, 2*ttl)}
}

// Solve returns the memoized schedule for the inputs, solving on a miss.
// Errors are never cached.
func (c *Cache) Solve(template *v1.ScheduleTemplate, inventory *v1.ResourceInventory) (*v1.SolvedSchedule, error) {
	key, err := cacheKey(template, inventory)
	if err != nil {
		// Unhashable input; solve directly.
		return Solve(template, inventory)
	}
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*v1.SolvedSchedule), nil
	}
	solved, err := Solve(template, inventory)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, solved)
	return solved, nil
}

func cacheKey(template *v1.ScheduleTemplate, inventory *v1.ResourceInventory) (string, error) {
	hash, err := hashstructure.Hash(struct {
		Template  *v1.ScheduleTemplate
		Inventory *v1.ResourceInventory
	}{Template: template, Inventory: inventory}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash), nil
}
