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

package v1

// ResourceInventoryItem declares how many of a particular resource the caller
// actually has available at solve time. This may differ from the template's
// theoretical capacity.
type ResourceInventoryItem struct {
	// ResourceID references a Resource by its ID. Items referencing unknown
	// resources are silently ignored by the allocator.
	ResourceID        string `json:"resource_id"`
	AvailableQuantity int64  `json:"available_quantity"`
}

// ResourceInventory is the complete set of real-world resource availability
// provided at solve time.
type ResourceInventory struct {
	Items []ResourceInventoryItem `json:"items"`
}
