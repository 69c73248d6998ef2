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

	"github.com/sa2812/skejj/pkg/events"
)

const (
	ReasonInventoryOverride  = "InventoryOverride"
	ReasonConsumableShortage = "ConsumableShortage"
	ReasonDelayedBeyondSlack = "DelayedBeyondSlack"
)

func InventoryOverride(resourceName string, availableQuantity, templateCapacity int64) events.Event {
	return events.Event{
		Reason:  ReasonInventoryOverride,
		Message: fmt.Sprintf("Inventory override: '%s' limited to %d (template defines %d)", resourceName, availableQuantity, templateCapacity),
	}
}

func ConsumableShortage(resourceName string, needed, remaining int64) events.Event {
	return events.Event{
		Reason:  ReasonConsumableShortage,
		Message: fmt.Sprintf("Consumable '%s' may run out -- %d needed but only %d available", resourceName, needed, remaining),
	}
}

func DelayedBeyondSlack(stepTitle, resourceName string) events.Event {
	return events.Event{
		Reason:  ReasonDelayedBeyondSlack,
		Message: fmt.Sprintf("Step '%s' was delayed beyond its available slack due to resource conflict with '%s'", stepTitle, resourceName),
	}
}
