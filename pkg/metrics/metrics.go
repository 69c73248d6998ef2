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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "skejj"

	solverSubsystem = "solver"

	ResultLabel = "result"
	ReasonLabel = "reason"

	ResultSuccess          = "success"
	ResultValidationFailed = "validation_failed"
	ResultError            = "error"
)

var (
	SolveDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: solverSubsystem,
			Name:      "solve_duration_seconds",
			Help:      "Duration of schedule solves in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)
	SolvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: solverSubsystem,
			Name:      "solves",
			Help:      "Number of schedule solves in total. Labeled by result.",
		},
		[]string{
			ResultLabel,
		},
	)
	WarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: solverSubsystem,
			Name:      "warnings",
			Help:      "Number of warnings emitted by solves in total. Labeled by the reason the warning was emitted.",
		},
		[]string{
			ReasonLabel,
		},
	)
)

// Measure returns a deferrable that observes the elapsed time on the given
// observer.
func Measure(o prometheus.Observer) func() {
	start := time.Now()
	return func() {
		o.Observe(time.Since(start).Seconds())
	}
}

func MustRegister() {
	prometheus.MustRegister(SolveDurationSeconds, SolvesTotal, WarningsTotal)
}
