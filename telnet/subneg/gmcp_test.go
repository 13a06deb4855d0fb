package subneg

import "testing"

func TestDecodeGMCPSplitsOnFirstSpace(t *testing.T) {
	g := DecodeGMCP([]byte(`Char.Vitals {"hp":100,"mp":50}`))
	if g.Package != "Char.Vitals" {
		t.Errorf("Package = %q, want Char.Vitals", g.Package)
	}
	if g.JSON != `{"hp":100,"mp":50}` {
		t.Errorf("JSON = %q", g.JSON)
	}
}

func TestDecodeGMCPBarePackageNoJSON(t *testing.T) {
	g := DecodeGMCP([]byte("Core.Ping"))
	if g.Package != "Core.Ping" || g.JSON != "" {
		t.Errorf("g = %+v, want bare package with empty JSON", g)
	}
}

func TestGMCPEncodeRoundTrip(t *testing.T) {
	g := GMCP{Package: "Char.Vitals", JSON: `{"hp":100}`}
	wire := g.Encode(nil)
	if string(wire) != `Char.Vitals {"hp":100}` {
		t.Fatalf("Encode = %q", wire)
	}
	decoded := DecodeGMCP(wire)
	if decoded != g {
		t.Errorf("round trip = %+v, want %+v", decoded, g)
	}
}

func TestGMCPEncodeBarePackageOmitsSpace(t *testing.T) {
	g := GMCP{Package: "Core.Ping"}
	if string(g.Encode(nil)) != "Core.Ping" {
		t.Errorf("Encode = %q, want bare package", g.Encode(nil))
	}
}

func TestGMCPOptionByte(t *testing.T) {
	g := GMCP{Package: "Core.Ping"}
	if g.Option() != optionGMCP {
		t.Errorf("Option() = %d, want %d", g.Option(), optionGMCP)
	}
}

func TestDecodeDispatchesGMCP(t *testing.T) {
	arg := Decode(optionGMCP, []byte("Core.Ping"))
	g, ok := arg.(GMCP)
	if !ok || g.Package != "Core.Ping" {
		t.Fatalf("Decode(GMCP option) = %+v", arg)
	}
}
