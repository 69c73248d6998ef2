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

// Package events carries the advisory notices the solver produces while it
// relaxes constraints. Events are ordered; the solver surfaces their messages
// as SolvedSchedule warnings.
package events

// Event is a single advisory notice.
type Event struct {
	// Reason is a short machine-readable category (e.g. "InventoryOverride").
	Reason string
	// Message is the human-readable warning text.
	Message string
}

// Recorder accepts events in the order they occur.
type Recorder interface {
	Publish(...Event)
}

// Sink is an ordered in-memory Recorder.
type Sink struct {
	events []Event
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Publish(evts ...Event) {
	s.events = append(s.events, evts...)
}

// Events returns the recorded events in publication order.
func (s *Sink) Events() []Event {
	return s.events
}

// Messages returns the recorded event messages in publication order. The
// result is never nil.
func (s *Sink) Messages() []string {
	msgs := make([]string, 0, len(s.events))
	for _, e := range s.events {
		msgs = append(msgs, e.Message)
	}
	return msgs
}
