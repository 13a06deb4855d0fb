package telnet

import "testing"

func TestReceiveDOUnsupportedRefusesWithoutStatus(t *testing.T) {
	n := NewNegotiator(nil, nil)
	status, resp := n.Receive(DO, OptionEcho)
	if status != nil {
		t.Fatalf("status = %+v, want nil (No -> No is not a transition)", status)
	}
	if resp == nil || resp.Kind != FrameWont {
		t.Fatalf("resp = %+v, want WONT", resp)
	}
	if n.LocalState(OptionEcho) {
		t.Errorf("LocalState = true, want false")
	}
}

func TestReceiveDOSupportedAcceptsWithStatus(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	status, resp := n.Receive(DO, OptionEcho)
	if status == nil || !status.Enabled || status.Side != SideLocal {
		t.Fatalf("status = %+v, want enabled local status", status)
	}
	if resp == nil || resp.Kind != FrameWill {
		t.Fatalf("resp = %+v, want WILL", resp)
	}
	if !n.LocalState(OptionEcho) {
		t.Errorf("LocalState = false, want true after accept")
	}
}

func TestReceiveDOWhenAlreadyYesIsIdempotent(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.Receive(DO, OptionEcho)
	status, resp := n.Receive(DO, OptionEcho)
	if status != nil {
		t.Fatalf("status = %+v, want nil (no transition on repeat DO)", status)
	}
	if resp != nil {
		t.Fatalf("resp = %+v, want nil", resp)
	}
}

func TestReceiveDONTFromYesDisables(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.Receive(DO, OptionEcho)
	status, resp := n.Receive(DONT, OptionEcho)
	if status == nil || status.Enabled {
		t.Fatalf("status = %+v, want disabled status", status)
	}
	if resp == nil || resp.Kind != FrameWont {
		t.Fatalf("resp = %+v, want WONT", resp)
	}
	if n.LocalState(OptionEcho) {
		t.Errorf("LocalState = true, want false after DONT")
	}
}

func TestEnableLocalSendsWillAndEntersWantYes(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	frame := n.EnableLocal(OptionEcho)
	if frame == nil || frame.Kind != FrameWill {
		t.Fatalf("frame = %+v, want WILL", frame)
	}
	if n.LocalState(OptionEcho) {
		t.Errorf("LocalState = true, want false until peer confirms")
	}
}

func TestEnableLocalUnsupportedReturnsNoFrame(t *testing.T) {
	n := NewNegotiator(nil, nil)
	if frame := n.EnableLocal(OptionEcho); frame != nil {
		t.Fatalf("frame = %+v, want nil (policy forbids initiating an unsupported option)", frame)
	}
	if n.LocalState(OptionEcho) {
		t.Errorf("LocalState = true, want false")
	}
}

func TestEnableLocalIdempotentWhenAlreadyRequested(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.EnableLocal(OptionEcho)
	if frame := n.EnableLocal(OptionEcho); frame != nil {
		t.Fatalf("frame = %+v, want nil on repeat request", frame)
	}
}

func TestHostInitiatedEnableThenPeerConfirms(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.EnableLocal(OptionEcho) // -> qWantYesEmpty, sent WILL

	// Peer's DO confirms: WantYesEmpty + activate -> Yes, no response frame.
	status, resp := n.Receive(DO, OptionEcho)
	if status == nil || !status.Enabled {
		t.Fatalf("status = %+v, want enabled", status)
	}
	if resp != nil {
		t.Fatalf("resp = %+v, want nil (confirmation needs no reply)", resp)
	}
	if !n.LocalState(OptionEcho) {
		t.Errorf("LocalState = false, want true")
	}
}

func TestHostInitiatedEnableThenPeerRefuses(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.EnableLocal(OptionEcho) // -> qWantYesEmpty

	// Peer's DONT while WantYesEmpty -> No, no response, no status flip
	// (state was never Yes).
	status, resp := n.Receive(DONT, OptionEcho)
	if status != nil {
		t.Fatalf("status = %+v, want nil (never reached Yes)", status)
	}
	if resp != nil {
		t.Fatalf("resp = %+v, want nil", resp)
	}
	if n.LocalState(OptionEcho) {
		t.Errorf("LocalState = true, want false")
	}
}

func TestDisableLocalFromYesSendsWont(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.Receive(DO, OptionEcho) // -> Yes

	frame := n.DisableLocal(OptionEcho)
	if frame == nil || frame.Kind != FrameWont {
		t.Fatalf("frame = %+v, want WONT", frame)
	}
	if n.LocalState(OptionEcho) {
		t.Errorf("LocalState = true, want false immediately (awaiting confirmation, but local optimistic state tracks Want, not Yes)")
	}
}

func TestRemoteSideTracksWillWont(t *testing.T) {
	n := NewNegotiator(nil, []OptionID{OptionMSDP})
	status, resp := n.Receive(WILL, OptionMSDP)
	if status == nil || !status.Enabled || status.Side != SideRemote {
		t.Fatalf("status = %+v, want enabled remote status", status)
	}
	if resp == nil || resp.Kind != FrameDo {
		t.Fatalf("resp = %+v, want DO", resp)
	}
	if !n.RemoteState(OptionMSDP) {
		t.Errorf("RemoteState = false, want true")
	}

	status, resp = n.Receive(WONT, OptionMSDP)
	if status == nil || status.Enabled {
		t.Fatalf("status = %+v, want disabled", status)
	}
	if resp == nil || resp.Kind != FrameDont {
		t.Fatalf("resp = %+v, want DONT", resp)
	}
}

func TestEnableRemoteRequestsDO(t *testing.T) {
	n := NewNegotiator(nil, []OptionID{OptionMSDP})
	frame := n.EnableRemote(OptionMSDP)
	if frame == nil || frame.Kind != FrameDo {
		t.Fatalf("frame = %+v, want DO", frame)
	}
}

func TestEnableRemoteUnsupportedReturnsNoFrame(t *testing.T) {
	n := NewNegotiator(nil, nil)
	if frame := n.EnableRemote(OptionMSDP); frame != nil {
		t.Fatalf("frame = %+v, want nil (policy forbids initiating an unsupported option)", frame)
	}
}

func TestOppositeRequestWhileWantNoRespondsWill(t *testing.T) {
	n := NewNegotiator([]OptionID{OptionEcho}, nil)
	n.Receive(DO, OptionEcho)    // -> Yes
	n.DisableLocal(OptionEcho)   // -> WantNo(Empty), sent WONT
	n.EnableLocal(OptionEcho)    // changed mind -> WantNo(Opposite), no frame yet

	// Peer's DONT (agreeing to the original WONT) while WantNoOpposite:
	// per RFC 1143 this means the peer agreed to turn off, but we now
	// want it on again -> respond WILL, state goes to WantYesEmpty.
	status, resp := n.Receive(DONT, OptionEcho)
	if resp == nil || resp.Kind != FrameWill {
		t.Fatalf("resp = %+v, want WILL (re-request after opposite change)", resp)
	}
	_ = status
}
