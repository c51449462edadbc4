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

// Command fastcodec is a small harness for exercising the codecs in this
// module from the command line: decoding a captured FAST stream against
// a YAML catalog descriptor, dialing a counterparty over SoupBinTCP or
// FIX session framing, and listening for PITCH datagrams.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = runDecode(os.Args[2:])
	case "soupbin":
		err = runSoupbinDial(os.Args[2:])
	case "fix":
		err = runFixDial(os.Args[2:])
	case "pitch":
		err = runPitchListen(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "fastcodec:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fastcodec <command> [flags]

commands:
  decode   decode a captured FAST stream against a catalog descriptor
  soupbin  dial a SoupBinTCP gateway and log the session
  fix      send one FIX tag=value message over a TCP connection
  pitch    listen for PITCH multicast-style datagrams and log them`)
}
