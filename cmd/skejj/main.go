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

// skejj reads one JSON request from stdin, solves or validates the enclosed
// schedule template, and writes the response envelope to stdout. Exit status
// is 0 for an ok envelope and 1 for an error envelope.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sa2812/skejj/pkg/metrics"
	"github.com/sa2812/skejj/pkg/protocol"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to construct logger: %s\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()
	metrics.MustRegister()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return write(protocol.Errorf("failed to read stdin: %s", err))
	}
	return write(protocol.NewHandler(logger).Handle(input))
}

func write(resp protocol.Response) int {
	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		fmt.Println(`{"ok":false,"error":"failed to encode response"}`)
		return 1
	}
	if !resp.OK {
		return 1
	}
	return 0
}
