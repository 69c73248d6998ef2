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

// Package protocol implements the JSON request/response envelope around the
// core solver: command dispatch, the two accepted inventory shapes, and
// wall-clock annotation of solved schedules. Everything here is downstream of
// the core; the solver itself works in minute offsets and reads the template's
// time constraint only to measure a declared start/end window.
package protocol

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	v1 "github.com/sa2812/skejj/pkg/apis/v1"
	"github.com/sa2812/skejj/pkg/solver"
	"github.com/sa2812/skejj/pkg/utils/pretty"
	"github.com/sa2812/skejj/pkg/utils/timeutil"
	"github.com/sa2812/skejj/pkg/validation"
)

// Command discriminates request payloads.
type Command string

const (
	CommandSolve    Command = "solve"
	CommandValidate Command = "validate"
)

// Request is the tagged message read from the caller.
type Request struct {
	Command  Command              `json:"command"`
	Template *v1.ScheduleTemplate `json:"template"`
	// Inventory is only meaningful for solve requests.
	Inventory *Inventory `json:"inventory,omitempty"`
}

// Inventory accepts the two equivalent payload shapes: the structured
// {items: [{resource_id, available_quantity}]} form, or a convenience
// {name: count} mapping resolved against resource display names.
type Inventory struct {
	Items  []v1.ResourceInventoryItem
	ByName map[string]int64
}

func (i *Inventory) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("invalid inventory payload: %w", err)
	}
	if itemsRaw, ok := probe["items"]; ok {
		return json.Unmarshal(itemsRaw, &i.Items)
	}
	i.ByName = map[string]int64{}
	for name, raw := range probe {
		var count int64
		if err := json.Unmarshal(raw, &count); err != nil {
			return fmt.Errorf("invalid inventory count for '%s': %w", name, err)
		}
		i.ByName[name] = count
	}
	return nil
}

func (i Inventory) MarshalJSON() ([]byte, error) {
	if i.Items != nil {
		return json.Marshal(map[string][]v1.ResourceInventoryItem{"items": i.Items})
	}
	return json.Marshal(i.ByName)
}

// Resolve converts the payload into the core inventory type. Name-keyed
// entries are matched against resource display names, exact match first, then
// ASCII case-insensitive; unmatched entries are silently ignored. Resources
// are visited in template order so the allocator's override warnings are
// deterministic.
func (i *Inventory) Resolve(template *v1.ScheduleTemplate) *v1.ResourceInventory {
	if i == nil {
		return nil
	}
	if i.Items != nil {
		return &v1.ResourceInventory{Items: i.Items}
	}
	names := lo.Keys(i.ByName)
	sort.Strings(names)
	lowerASCII := func(c rune) rune {
		if 'A' <= c && c <= 'Z' {
			return c + 'a' - 'A'
		}
		return c
	}
	items := []v1.ResourceInventoryItem{}
	for _, r := range template.Resources {
		count, ok := i.ByName[r.Name]
		if !ok {
			for _, name := range names {
				if strings.Map(lowerASCII, name) == strings.Map(lowerASCII, r.Name) {
					count, ok = i.ByName[name], true
					break
				}
			}
		}
		if ok {
			items = append(items, v1.ResourceInventoryItem{ResourceID: r.ID, AvailableQuantity: count})
		}
	}
	return &v1.ResourceInventory{Items: items}
}

// Response is the envelope written back to the caller: {ok: true, data} on
// success, {ok: false, error} on failure.
type Response struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func OK(data any) Response {
	return Response{OK: true, Data: data}
}

func Errorf(format string, args ...any) Response {
	return Response{OK: false, Error: fmt.Sprintf(format, args...)}
}

// Handler dispatches decoded requests to the core. Schedules are memoized
// across requests; solving is pure, so this is transparent to callers.
type Handler struct {
	logger *zap.Logger
	cache  *solver.Cache
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
		cache:  solver.NewCache(time.Minute),
	}
}

// Handle decodes a single request and returns the response envelope.
func (h *Handler) Handle(input []byte) Response {
	var req Request
	if err := json.Unmarshal(input, &req); err != nil {
		return Errorf("invalid JSON input: %s", err)
	}
	switch req.Command {
	case CommandSolve:
		return h.solve(req)
	case CommandValidate:
		return h.validate(req)
	default:
		return Errorf("unknown command '%s'", req.Command)
	}
}

func (h *Handler) solve(req Request) Response {
	if req.Template == nil {
		return Errorf("missing template")
	}
	h.logger.Debug("handling solve request", zap.String("request", pretty.Concise(req)))
	start := time.Now()
	solved, err := h.cache.Solve(req.Template, req.Inventory.Resolve(req.Template))
	if err != nil {
		h.logger.Warn("solve failed", zap.String("template", req.Template.ID), zap.Error(err))
		return Errorf("%s", err)
	}
	ApplyWallClock(req.Template, solved)
	h.logger.Info("solved schedule",
		zap.String("template", req.Template.ID),
		zap.Int("steps", len(solved.SolvedSteps)),
		zap.Int64("total-duration-mins", solved.Summary.TotalDurationMins),
		zap.Duration("duration", time.Since(start)),
		zap.String("warnings", pretty.Slice(solved.Warnings, 3)),
	)
	return OK(solved)
}

func (h *Handler) validate(req Request) Response {
	if req.Template == nil {
		return Errorf("missing template")
	}
	result := validation.Validate(req.Template)
	h.logger.Info("validated template",
		zap.String("template", req.Template.ID),
		zap.Bool("ok", result.Ok()),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return OK(result)
}

// ApplyWallClock fills in ISO-8601 start/end times on solved steps when the
// template declares a time constraint. Forward scheduling adds each step's
// offset to the declared start; backward scheduling (end time only) subtracts
// the distance from project end off the declared end.
func ApplyWallClock(template *v1.ScheduleTemplate, solved *v1.SolvedSchedule) {
	tc := template.TimeConstraint
	if tc == nil {
		return
	}
	backward := tc.StartTime == nil && tc.EndTime != nil
	if backward {
		end, ok := timeutil.Parse(*tc.EndTime)
		if !ok {
			return
		}
		projectEnd := solved.Summary.TotalDurationMins
		for i := range solved.SolvedSteps {
			s := &solved.SolvedSteps[i]
			s.StartTime = lo.ToPtr(timeutil.Format(end.Add(-time.Duration(projectEnd-s.StartOffsetMins) * time.Minute)))
			s.EndTime = lo.ToPtr(timeutil.Format(end.Add(-time.Duration(projectEnd-s.EndOffsetMins) * time.Minute)))
		}
		return
	}
	if tc.StartTime == nil {
		return
	}
	start, ok := timeutil.Parse(*tc.StartTime)
	if !ok {
		return
	}
	for i := range solved.SolvedSteps {
		s := &solved.SolvedSteps[i]
		s.StartTime = lo.ToPtr(timeutil.Format(start.Add(time.Duration(s.StartOffsetMins) * time.Minute)))
		s.EndTime = lo.ToPtr(timeutil.Format(start.Add(time.Duration(s.EndOffsetMins) * time.Minute)))
	}
}
