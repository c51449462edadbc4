/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

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

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tradecodecs/fastcodec/fast"
	"github.com/tradecodecs/fastcodec/fast/catalogyaml"
)

// runDecode reads a captured FAST byte stream from a file (or stdin) and
// a catalog descriptor from a YAML file, and prints one JSON line per
// decoded message to stdout until the stream is exhausted or a garbled
// message is hit.
func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	catalogPath := fs.String("catalog", "", "path to a catalog descriptor YAML file (required)")
	inputPath := fs.String("input", "-", "path to a captured FAST stream, or - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *catalogPath == "" {
		return errors.New("decode: -catalog is required")
	}

	catalogFile, err := os.Open(*catalogPath)
	if err != nil {
		return fmt.Errorf("decode: open catalog: %w", err)
	}
	defer catalogFile.Close()

	catalog, err := catalogyaml.Load(catalogFile)
	if err != nil {
		return fmt.Errorf("decode: load catalog: %w", err)
	}

	in := os.Stdin
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("decode: open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	stream, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("decode: read input: %w", err)
	}

	b := fast.NewBuffer(stream)
	decoder := fast.NewDecoder(catalog)
	enc := json.NewEncoder(os.Stdout)

	for b.Remaining() > 0 {
		msg, err := decoder.Decode(b)
		if err != nil {
			if errors.Is(err, fast.ErrGarbled) {
				return fmt.Errorf("decode: stopped at garbled message: %w", err)
			}
			return err
		}
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("decode: write output: %w", err)
		}
	}
	return nil
}
