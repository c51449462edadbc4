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
	"context"
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/tradecodecs/fastcodec/fixsession"
	"github.com/tradecodecs/fastcodec/pitch"
	"github.com/tradecodecs/fastcodec/soupbintcp"
	"github.com/tradecodecs/fastcodec/transport"
)

// runSoupbinDial opens a SoupBinTCP session against addr, logs in, and
// prints every packet it receives until the connection closes.
func runSoupbinDial(args []string) error {
	fs := flag.NewFlagSet("soupbin", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:12345", "gateway address")
	username := fs.String("username", "demo", "login username")
	password := fs.String("password", "", "login password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conn, err := net.DialTimeout("tcp", *addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("soupbin: dial: %w", err)
	}
	defer conn.Close()

	session := soupbintcp.NewSession(conn)
	login := soupbintcp.LoginRequestPayload{
		Username: *username,
		Password: *password,
	}
	if err := session.Send(soupbintcp.Packet{Type: soupbintcp.LoginRequest, Payload: login.Encode()}); err != nil {
		return fmt.Errorf("soupbin: send login request: %w", err)
	}

	for {
		p, err := session.Recv()
		if err != nil {
			return fmt.Errorf("soupbin: recv: %w", err)
		}
		fmt.Printf("soupbin: %s payload=%q\n", p.Type, p.Payload)
		if p.Type == soupbintcp.EndOfSession {
			return nil
		}
	}
}

// runFixDial sends one FIX Logon(35=A) message over a plain TCP
// connection to addr and prints whatever comes back.
func runFixDial(args []string) error {
	fs := flag.NewFlagSet("fix", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:12346", "counterparty address")
	senderCompID := fs.String("sender", "DEMO", "SenderCompID (tag 49)")
	targetCompID := fs.String("target", "GATEWAY", "TargetCompID (tag 56)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conn, err := net.DialTimeout("tcp", *addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("fix: dial: %w", err)
	}
	defer conn.Close()

	msg := fixsession.Message{
		BeginString: "FIX.4.2",
		MsgType:     "A",
		Fields: []fixsession.Field{
			{Tag: 49, Value: *senderCompID},
			{Tag: 56, Value: *targetCompID},
			{Tag: 98, Value: "0"},
			{Tag: 108, Value: "30"},
		},
	}
	if _, err := conn.Write(msg.Encode()); err != nil {
		return fmt.Errorf("fix: write logon: %w", err)
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		return fmt.Errorf("fix: read response: %w", err)
	}
	resp, err := fixsession.Parse(buf[:n])
	if err != nil {
		return fmt.Errorf("fix: parse response: %w", err)
	}
	fmt.Printf("fix: received MsgType=%s Fields=%v\n", resp.MsgType, resp.Fields)
	return nil
}

// runPitchListen binds a UDP listener and decodes every PITCH message
// carried in each datagram it receives, printing them until interrupted.
func runPitchListen(args []string) error {
	fs := flag.NewFlagSet("pitch", flag.ExitOnError)
	bindAddr := fs.String("bind", "0.0.0.0:30001", "address to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l := transport.NewUDPListener(*bindAddr, func(_ context.Context, packet []byte) {
		for len(packet) > 0 {
			msg, n, err := pitch.Decode(packet)
			if err != nil {
				fmt.Printf("pitch: %v\n", err)
				return
			}
			fmt.Printf("pitch: %s %+v\n", msg.Type, msg.Payload)
			packet = packet[n:]
		}
	})

	return l.Listen(context.Background())
}
