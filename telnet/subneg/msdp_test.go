package subneg

import "testing"

func TestDecodeMSDPFlatPair(t *testing.T) {
	payload := []byte{msdpVAR, 'N', 'A', 'M', 'E', msdpVAL, 'R', 'o', 'o', 'm'}
	data := DecodeMSDP(payload)
	v, ok := data.Get("NAME")
	if !ok {
		t.Fatalf("Get(NAME) missing")
	}
	if v.Kind != MSDPString || v.Str != "Room" {
		t.Fatalf("value = %+v, want string Room", v)
	}
}

func TestDecodeMSDPArrayValue(t *testing.T) {
	payload := []byte{msdpVAR}
	payload = append(payload, "EXITS"...)
	payload = append(payload, msdpVAL, msdpArrayOpen,
		msdpVAL, 'n', msdpVAL, 's', msdpArrayClose)

	data := DecodeMSDP(payload)
	v, ok := data.Get("EXITS")
	if !ok {
		t.Fatalf("Get(EXITS) missing")
	}
	if v.Kind != MSDPArray || len(v.Array) != 2 {
		t.Fatalf("value = %+v, want 2-element array", v)
	}
	if v.Array[0].Str != "n" || v.Array[1].Str != "s" {
		t.Errorf("array = %v, want [n s]", v.Array)
	}
}

func TestDecodeMSDPNestedTableValue(t *testing.T) {
	payload := []byte{msdpVAR}
	payload = append(payload, "ROOM"...)
	payload = append(payload, msdpVAL, msdpTableOpen,
		msdpVAR)
	payload = append(payload, "VNUM"...)
	payload = append(payload, msdpVAL)
	payload = append(payload, "1001"...)
	payload = append(payload, msdpTableClose)

	data := DecodeMSDP(payload)
	v, ok := data.Get("ROOM")
	if !ok {
		t.Fatalf("Get(ROOM) missing")
	}
	if v.Kind != MSDPTableKind || v.Table == nil {
		t.Fatalf("value = %+v, want table", v)
	}
	inner, ok := v.Table.Get("VNUM")
	if !ok || inner.Str != "1001" {
		t.Fatalf("nested VNUM = %+v, want string 1001", inner)
	}
}

func TestMSDPRoundTripEncodeDecode(t *testing.T) {
	data := NewMudServerData()
	data.Set("NAME", NewMSDPString("Room"))
	data.Set("EXITS", NewMSDPArray(NewMSDPString("n"), NewMSDPString("s")))

	wire := data.Encode(nil)
	decoded := DecodeMSDP(wire)

	name, ok := decoded.Get("NAME")
	if !ok || name.Str != "Room" {
		t.Fatalf("round-tripped NAME = %+v", name)
	}
	exits, ok := decoded.Get("EXITS")
	if !ok || len(exits.Array) != 2 {
		t.Fatalf("round-tripped EXITS = %+v", exits)
	}
}

func TestMSDPTableKeysPreservesInsertionOrder(t *testing.T) {
	table := NewMSDPTableEmpty()
	table.Set("b", NewMSDPString("2"))
	table.Set("a", NewMSDPString("1"))
	table.Set("b", NewMSDPString("20")) // overwrite, order unchanged

	keys := table.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("Keys = %v, want [b a]", keys)
	}
	v, _ := table.Get("b")
	if v.Str != "20" {
		t.Errorf("Get(b) = %q, want overwritten value 20", v.Str)
	}
}

func TestDecodeMSDPMissingArrayCloseAtBufferEnd(t *testing.T) {
	payload := []byte{msdpVAR}
	payload = append(payload, "EXITS"...)
	payload = append(payload, msdpVAL, msdpArrayOpen, msdpVAL, 'n')

	data := DecodeMSDP(payload)
	v, ok := data.Get("EXITS")
	if !ok || v.Kind != MSDPArray || len(v.Array) != 1 || v.Array[0].Str != "n" {
		t.Fatalf("value = %+v, want tolerant 1-element array", v)
	}
}

func TestUnknownOptionFallsBackToByteEcho(t *testing.T) {
	arg := Decode(200, []byte("raw bytes"))
	u, ok := arg.(Unknown)
	if !ok {
		t.Fatalf("Decode(200, ...) = %T, want Unknown", arg)
	}
	if u.Option() != 200 || string(u.Bytes) != "raw bytes" {
		t.Errorf("Unknown = %+v", u)
	}
	if string(u.Encode(nil)) != "raw bytes" {
		t.Errorf("Encode = %q, want round trip", u.Encode(nil))
	}
}
