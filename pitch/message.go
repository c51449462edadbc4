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

// Package pitch decodes PITCH market-data messages: fixed-layout binary
// structs dispatched by a single leading message-type byte, exactly the
// memcpy-by-size dispatch of the original implementation, reimplemented
// here with encoding/binary instead of a raw struct memcpy. It is a thin
// collaborator, not a redesign target.
package pitch

import (
	"encoding/binary"
	"fmt"
)

// Type is the one-byte message type tag every PITCH message begins with.
type Type byte

const (
	TypeAddOrderShort  Type = 0x21
	TypeAddOrderLong   Type = 0x22
	TypeOrderExecuted  Type = 0x23
	TypeOrderCancel    Type = 0x24
	TypeTradeShort     Type = 0x28
	TypeTradeLong      Type = 0x29
	TypeTradeBreak     Type = 0x2A
	TypeTradingStatus  Type = 0x31
	TypeAuctionUpdate  Type = 0x32
	TypeAuctionSummary Type = 0x33
)

func (t Type) String() string {
	switch t {
	case TypeAddOrderShort:
		return "AddOrderShort"
	case TypeAddOrderLong:
		return "AddOrderLong"
	case TypeOrderExecuted:
		return "OrderExecuted"
	case TypeOrderCancel:
		return "OrderCancel"
	case TypeTradeShort:
		return "TradeShort"
	case TypeTradeLong:
		return "TradeLong"
	case TypeTradeBreak:
		return "TradeBreak"
	case TypeTradingStatus:
		return "TradingStatus"
	case TypeAuctionUpdate:
		return "AuctionUpdate"
	case TypeAuctionSummary:
		return "AuctionSummary"
	default:
		return fmt.Sprintf("Type(0x%02X)", byte(t))
	}
}

// Message is the decoded form of any PITCH message: its type tag plus the
// concrete payload, which callers type-assert against the structs below.
type Message struct {
	Type    Type
	Payload interface{}
}

// AddOrderShort carries a 16-bit share quantity and 4-byte-scaled price,
// the compact form used for round-lot orders.
type AddOrderShort struct {
	Timestamp   uint32
	OrderID     uint64
	SideIndicator byte
	Shares      uint16
	Symbol      [6]byte
	Price       uint32
}

const sizeAddOrderShort = 1 + 4 + 8 + 1 + 2 + 6 + 4

// AddOrderLong is AddOrderShort with 32-bit shares and 8-byte price for
// odd-lot or large orders.
type AddOrderLong struct {
	Timestamp     uint32
	OrderID       uint64
	SideIndicator byte
	Shares        uint32
	Symbol        [6]byte
	Price         uint64
}

const sizeAddOrderLong = 1 + 4 + 8 + 1 + 4 + 6 + 8

// OrderExecuted reports a full or partial fill against a resting order.
type OrderExecuted struct {
	Timestamp       uint32
	OrderID         uint64
	ExecutedShares  uint32
	ExecutionID     uint64
}

const sizeOrderExecuted = 1 + 4 + 8 + 4 + 8

// OrderCancel reports a cancelled (or reduced) resting order.
type OrderCancel struct {
	Timestamp      uint32
	OrderID        uint64
	CanceledShares uint32
}

const sizeOrderCancel = 1 + 4 + 8 + 4

// TradeShort reports an execution not attributable to a resting order on
// the book, in the compact 16-bit-shares form.
type TradeShort struct {
	Timestamp     uint32
	OrderID       uint64
	SideIndicator byte
	Shares        uint16
	Symbol        [6]byte
	Price         uint32
	ExecutionID   uint64
}

const sizeTradeShort = 1 + 4 + 8 + 1 + 2 + 6 + 4 + 8

// TradeLong is TradeShort with 32-bit shares and 8-byte price.
type TradeLong struct {
	Timestamp     uint32
	OrderID       uint64
	SideIndicator byte
	Shares        uint32
	Symbol        [6]byte
	Price         uint64
	ExecutionID   uint64
}

const sizeTradeLong = 1 + 4 + 8 + 1 + 4 + 6 + 8 + 8

// TradeBreak reports a previously-reported trade being busted.
type TradeBreak struct {
	Timestamp   uint32
	ExecutionID uint64
}

const sizeTradeBreak = 1 + 4 + 8

// TradingStatus reports a symbol's current trading state.
type TradingStatus struct {
	Timestamp uint32
	Symbol    [6]byte
	Status    byte
}

const sizeTradingStatus = 1 + 4 + 6 + 1

// AuctionUpdate reports the current indicative price/size of an ongoing
// auction.
type AuctionUpdate struct {
	Timestamp    uint32
	Symbol       [6]byte
	AuctionType  byte
	ReferencePrice uint64
	BuyShares    uint32
	SellShares   uint32
	IndicativePrice uint64
}

const sizeAuctionUpdate = 1 + 4 + 6 + 1 + 8 + 4 + 4 + 8

// AuctionSummary reports an auction's final clearing price and volume.
type AuctionSummary struct {
	Timestamp uint32
	Symbol    [6]byte
	Price     uint64
	Shares    uint32
}

const sizeAuctionSummary = 1 + 4 + 6 + 8 + 4

func messageSize(t Type) int {
	switch t {
	case TypeAddOrderShort:
		return sizeAddOrderShort
	case TypeAddOrderLong:
		return sizeAddOrderLong
	case TypeOrderExecuted:
		return sizeOrderExecuted
	case TypeOrderCancel:
		return sizeOrderCancel
	case TypeTradeShort:
		return sizeTradeShort
	case TypeTradeLong:
		return sizeTradeLong
	case TypeTradeBreak:
		return sizeTradeBreak
	case TypeTradingStatus:
		return sizeTradingStatus
	case TypeAuctionUpdate:
		return sizeAuctionUpdate
	case TypeAuctionSummary:
		return sizeAuctionSummary
	default:
		return 0
	}
}

// Decode reads exactly one message from the front of b, dispatching on
// the leading type byte the same way the original's pitch_message_size
// switch does, and returns the number of bytes consumed.
func Decode(b []byte) (Message, int, error) {
	if len(b) == 0 {
		return Message{}, 0, fmt.Errorf("pitch: empty buffer")
	}
	t := Type(b[0])
	size := messageSize(t)
	if size == 0 {
		return Message{}, 0, fmt.Errorf("pitch: unknown message type 0x%02X", b[0])
	}
	if len(b) < size {
		return Message{}, 0, fmt.Errorf("pitch: buffer holds %d bytes, need %d for %s", len(b), size, t)
	}

	r := fieldReader{b: b[1:size]}
	var payload interface{}
	switch t {
	case TypeAddOrderShort:
		payload = AddOrderShort{
			Timestamp:     r.u32(),
			OrderID:       r.u64(),
			SideIndicator: r.u8(),
			Shares:        r.u16(),
			Symbol:        r.sym6(),
			Price:         r.u32(),
		}
	case TypeAddOrderLong:
		payload = AddOrderLong{
			Timestamp:     r.u32(),
			OrderID:       r.u64(),
			SideIndicator: r.u8(),
			Shares:        r.u32(),
			Symbol:        r.sym6(),
			Price:         r.u64(),
		}
	case TypeOrderExecuted:
		payload = OrderExecuted{
			Timestamp:      r.u32(),
			OrderID:        r.u64(),
			ExecutedShares: r.u32(),
			ExecutionID:    r.u64(),
		}
	case TypeOrderCancel:
		payload = OrderCancel{
			Timestamp:      r.u32(),
			OrderID:        r.u64(),
			CanceledShares: r.u32(),
		}
	case TypeTradeShort:
		payload = TradeShort{
			Timestamp:     r.u32(),
			OrderID:       r.u64(),
			SideIndicator: r.u8(),
			Shares:        r.u16(),
			Symbol:        r.sym6(),
			Price:         r.u32(),
			ExecutionID:   r.u64(),
		}
	case TypeTradeLong:
		payload = TradeLong{
			Timestamp:     r.u32(),
			OrderID:       r.u64(),
			SideIndicator: r.u8(),
			Shares:        r.u32(),
			Symbol:        r.sym6(),
			Price:         r.u64(),
			ExecutionID:   r.u64(),
		}
	case TypeTradeBreak:
		payload = TradeBreak{
			Timestamp:   r.u32(),
			ExecutionID: r.u64(),
		}
	case TypeTradingStatus:
		payload = TradingStatus{
			Timestamp: r.u32(),
			Symbol:    r.sym6(),
			Status:    r.u8(),
		}
	case TypeAuctionUpdate:
		payload = AuctionUpdate{
			Timestamp:       r.u32(),
			Symbol:          r.sym6(),
			AuctionType:     r.u8(),
			ReferencePrice:  r.u64(),
			BuyShares:       r.u32(),
			SellShares:      r.u32(),
			IndicativePrice: r.u64(),
		}
	case TypeAuctionSummary:
		payload = AuctionSummary{
			Timestamp: r.u32(),
			Symbol:    r.sym6(),
			Price:     r.u64(),
			Shares:    r.u32(),
		}
	}
	if r.err != nil {
		return Message{}, 0, r.err
	}
	return Message{Type: t, Payload: payload}, size, nil
}

// fieldReader sequentially consumes little-endian fixed-layout fields,
// recording the first short-read error instead of threading one through
// every call site.
type fieldReader struct {
	b   []byte
	off int
	err error
}

func (r *fieldReader) take(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.off+n > len(r.b) {
		r.err = fmt.Errorf("pitch: short message body")
		return make([]byte, n)
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out
}

func (r *fieldReader) u8() byte    { return r.take(1)[0] }
func (r *fieldReader) u16() uint16 { return binary.LittleEndian.Uint16(r.take(2)) }
func (r *fieldReader) u32() uint32 { return binary.LittleEndian.Uint32(r.take(4)) }
func (r *fieldReader) u64() uint64 { return binary.LittleEndian.Uint64(r.take(8)) }
func (r *fieldReader) sym6() [6]byte {
	var sym [6]byte
	copy(sym[:], r.take(6))
	return sym
}
