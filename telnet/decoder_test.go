package telnet

import (
	"context"
	"log/slog"
	"testing"

	"github.com/huhlig/termionix/telnet/subneg"
)

func eventKinds(events []Event) []FrameKind {
	out := make([]FrameKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func newTestDecoder() *Decoder {
	return NewDecoder(NewNegotiator(nil, nil), 0, slog.Default())
}

func TestDecodePlainDataPassesThrough(t *testing.T) {
	d := newTestDecoder()
	events, outbound := d.Decode([]byte("hi"))
	if len(outbound) != 0 {
		t.Fatalf("outbound = %v, want none", outbound)
	}
	if len(events) != 2 || events[0].Data != 'h' || events[1].Data != 'i' {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeDoubledIACIsSingleDataByte(t *testing.T) {
	d := newTestDecoder()
	events, _ := d.Decode([]byte{IAC, IAC})
	if len(events) != 1 || events[0].Kind != FrameData || events[0].Data != 0xFF {
		t.Fatalf("events = %+v, want single Data(0xFF)", events)
	}
}

func TestDecodeSingleByteCommands(t *testing.T) {
	d := newTestDecoder()
	events, _ := d.Decode([]byte{IAC, NOP, IAC, GA, IAC, EOR})
	want := []FrameKind{FrameNoOperation, FrameGoAhead, FrameEndOfRecord}
	got := eventKinds(events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeNegotiationProducesStatusAndResponse(t *testing.T) {
	negot := NewNegotiator([]OptionID{OptionEcho}, nil)
	d := NewDecoder(negot, 0, slog.Default())

	events, outbound := d.Decode([]byte{IAC, DO, OptionEcho.ToByte()})
	if len(events) != 1 || events[0].Kind != FrameOptionStatus || !events[0].Enabled {
		t.Fatalf("events = %+v, want one enabled OptionStatus", events)
	}
	if len(outbound) != 1 || outbound[0].Kind != FrameWill || outbound[0].Option != OptionEcho {
		t.Fatalf("outbound = %+v, want WILL ECHO", outbound)
	}
}

func TestDecodeUnsupportedOptionRefused(t *testing.T) {
	d := newTestDecoder()
	events, outbound := d.Decode([]byte{IAC, DO, OptionEcho.ToByte()})
	if len(events) != 0 {
		t.Fatalf("events = %+v, want none (No -> No is not a transition)", events)
	}
	if len(outbound) != 1 || outbound[0].Kind != FrameWont {
		t.Fatalf("outbound = %+v, want WONT", outbound)
	}
}

func TestDecodeSubnegotiationGMCP(t *testing.T) {
	d := newTestDecoder()
	payload := []byte("Core.Ping")
	frame := append([]byte{IAC, SB, OptionGMCP.ToByte()}, payload...)
	frame = append(frame, IAC, SE)

	events, _ := d.Decode(frame)
	if len(events) != 1 || events[0].Kind != FrameSubnegotiate {
		t.Fatalf("events = %+v, want single Subnegotiate", events)
	}
	g, ok := events[0].Arg.(subneg.GMCP)
	if !ok || g.Package != "Core.Ping" {
		t.Fatalf("Arg = %+v, want GMCP Core.Ping", events[0].Arg)
	}
}

func TestDecodeSubnegotiationEscapesIAC(t *testing.T) {
	d := newTestDecoder()
	frame := []byte{IAC, SB, OptionGMCP.ToByte(), 'a', IAC, IAC, 'b', IAC, SE}
	events, _ := d.Decode(frame)
	if len(events) != 1 || events[0].Kind != FrameSubnegotiate {
		t.Fatalf("events = %+v", events)
	}
	g := events[0].Arg.(subneg.GMCP)
	if g.Package != "a\xffb" {
		t.Fatalf("Package = %q, want %q", g.Package, "a\xffb")
	}
}

func TestDecodeMalformedSubnegotiationAborts(t *testing.T) {
	d := newTestDecoder()
	// IAC followed by neither IAC nor SE inside a subnegotiation payload.
	frame := []byte{IAC, SB, OptionGMCP.ToByte(), 'x', IAC, NOP}
	events, _ := d.Decode(frame)
	if len(events) != 1 || events[0].Kind != FrameNoOperation {
		t.Fatalf("events = %+v, want recovery NoOperation", events)
	}
}

// capturingHandler is a minimal slog.Handler that records emitted
// records so a test can assert a specific warning fired.
type capturingHandler struct {
	records []slog.Record
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(_ string) slog.Handler      { return h }

func TestDecodeHighBitDataByteOutsideBinaryWarns(t *testing.T) {
	h := &capturingHandler{}
	d := NewDecoder(NewNegotiator(nil, nil), 0, slog.New(h))

	events, _ := d.Decode([]byte{0xC3})
	if len(events) != 1 || events[0].Kind != FrameData || events[0].Data != 0xC3 {
		t.Fatalf("events = %+v, want Data(0xC3) (never dropped)", events)
	}
	if len(h.records) != 1 || h.records[0].Level != slog.LevelWarn {
		t.Fatalf("records = %+v, want one warning", h.records)
	}
}

func TestDecodeHighBitDataByteUnderBinaryDoesNotWarn(t *testing.T) {
	h := &capturingHandler{}
	negot := NewNegotiator([]OptionID{OptionBinary}, nil)
	negot.Receive(DO, OptionBinary) // -> LocalState(OptionBinary) == true
	d := NewDecoder(negot, 0, slog.New(h))

	events, _ := d.Decode([]byte{0xC3})
	if len(events) != 1 || events[0].Data != 0xC3 {
		t.Fatalf("events = %+v, want Data(0xC3)", events)
	}
	if len(h.records) != 0 {
		t.Fatalf("records = %+v, want none under TRANSMIT-BINARY", h.records)
	}
}

func TestDecodeSubnegotiationOverflowAborts(t *testing.T) {
	d := NewDecoder(NewNegotiator(nil, nil), 2, slog.Default())
	frame := []byte{IAC, SB, OptionGMCP.ToByte(), 'a', 'b', 'c', IAC, SE}
	events, _ := d.Decode(frame)
	// 'c' overflows the 2-byte cap: recovery NoOperation, back to
	// NormalData. The trailing IAC SE is then an unknown command outside a
	// subnegotiation and yields a second NoOperation.
	if len(events) != 2 || events[0].Kind != FrameNoOperation || events[1].Kind != FrameNoOperation {
		t.Fatalf("events = %+v, want overflow recovery NoOperation then NoOperation for stray IAC SE", events)
	}
}

func TestDecodeSplitAcrossCalls(t *testing.T) {
	d := newTestDecoder()
	events1, _ := d.Decode([]byte{IAC})
	if len(events1) != 0 {
		t.Fatalf("events1 = %+v, want none while awaiting command byte", events1)
	}
	events2, _ := d.Decode([]byte{NOP})
	if len(events2) != 1 || events2[0].Kind != FrameNoOperation {
		t.Fatalf("events2 = %+v, want NoOperation", events2)
	}
}

func TestDecodeUnknownCommandByteWarnsAndNoOps(t *testing.T) {
	d := newTestDecoder()
	events, _ := d.Decode([]byte{IAC, 0x01})
	if len(events) != 1 || events[0].Kind != FrameNoOperation {
		t.Fatalf("events = %+v, want NoOperation fallback", events)
	}
}
