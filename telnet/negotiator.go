package telnet

// qState is the RFC 1143 Q-method state for one (option, side) pair.
// No and Yes are stable; the four Want states mean a request is
// outstanding, with the Opposite flag recording that the host changed
// its mind about the desired end state while waiting for the peer's
// reply.
type qState byte

const (
	qNo qState = iota
	qYes
	qWantNoEmpty
	qWantNoOpposite
	qWantYesEmpty
	qWantYesOpposite
)

// Negotiator is the Q-method option negotiation engine: a Q-state per
// (option, side), driven by received DO/DONT/WILL/WONT frames and by
// host-initiated enable/disable calls, producing response frames and
// OptionStatus events per §4.7. It holds no reference to a socket; a
// Decoder feeds it received negotiation frames and collects its
// responses.
type Negotiator struct {
	local  map[OptionID]qState
	remote map[OptionID]qState

	supportedLocally  map[OptionID]bool
	supportedRemotely map[OptionID]bool
}

// NewNegotiator creates a Negotiator whose accept/refuse decisions for
// unsolicited DO (local activation) and WILL (remote activation) are
// governed by the two supplied sets. Options absent from the relevant
// set are refused when the peer proposes them and silently ignored
// when the host tries to request them.
func NewNegotiator(supportedLocally, supportedRemotely []OptionID) *Negotiator {
	n := &Negotiator{
		local:             make(map[OptionID]qState),
		remote:            make(map[OptionID]qState),
		supportedLocally:  make(map[OptionID]bool, len(supportedLocally)),
		supportedRemotely: make(map[OptionID]bool, len(supportedRemotely)),
	}
	for _, o := range supportedLocally {
		n.supportedLocally[o] = true
	}
	for _, o := range supportedRemotely {
		n.supportedRemotely[o] = true
	}
	return n
}

func (n *Negotiator) stateOf(side Side, option OptionID) qState {
	if side == SideLocal {
		return n.local[option]
	}
	return n.remote[option]
}

func (n *Negotiator) setState(side Side, option OptionID, s qState) {
	if side == SideLocal {
		n.local[option] = s
	} else {
		n.remote[option] = s
	}
}

// LocalState reports whether option is currently agreed active on the
// local side (WILL has been accepted).
func (n *Negotiator) LocalState(option OptionID) bool {
	return n.local[option] == qYes
}

// RemoteState reports whether option is currently agreed active on the
// remote side (DO has been accepted, i.e. the peer is sending us data
// under that option).
func (n *Negotiator) RemoteState(option OptionID) bool {
	return n.remote[option] == qYes
}

// Receive feeds a single negotiation command (the byte following IAC:
// DO, DONT, WILL, or WONT) and its option to the engine. It returns an
// OptionStatus event if the option's agreed state flipped, and a
// response frame if the table calls for one.
func (n *Negotiator) Receive(opcode byte, option OptionID) (status *Event, response *Frame) {
	switch opcode {
	case DO:
		return n.receiveRequest(SideLocal, option, true, n.supportedLocally[option], WILL, WONT)
	case DONT:
		return n.receiveRequest(SideLocal, option, false, n.supportedLocally[option], WILL, WONT)
	case WILL:
		return n.receiveRequest(SideRemote, option, true, n.supportedRemotely[option], DO, DONT)
	case WONT:
		return n.receiveRequest(SideRemote, option, false, n.supportedRemotely[option], DO, DONT)
	default:
		return nil, nil
	}
}

// receiveRequest implements the shared shape of all four received-frame
// transition tables in §4.7: activate is true for DO/WILL, false for
// DONT/WONT; acceptCmd/refuseCmd are the opcodes used to respond
// (WILL/WONT for the local side, DO/DONT for the remote side).
func (n *Negotiator) receiveRequest(side Side, option OptionID, activate, supported bool, acceptCmd, refuseCmd byte) (*Event, *Frame) {
	before := n.stateOf(side, option)
	var after qState
	var respond byte
	hasResponse := false

	switch {
	case activate:
		switch before {
		case qNo:
			if supported {
				after, respond, hasResponse = qYes, acceptCmd, true
			} else {
				after, respond, hasResponse = qNo, refuseCmd, true
			}
		case qYes:
			after = qYes
		case qWantNoEmpty:
			// Protocol error: treat as if our WONT request had not been
			// sent, silently accepting No.
			after = qNo
		case qWantNoOpposite:
			after, respond, hasResponse = qYes, acceptCmd, true
		case qWantYesEmpty:
			after = qYes
		case qWantYesOpposite:
			after, respond, hasResponse = qWantNoEmpty, refuseCmd, true
		}
	default:
		switch before {
		case qNo:
			after = qNo
		case qYes:
			after, respond, hasResponse = qNo, refuseCmd, true
		case qWantNoEmpty:
			after = qNo
		case qWantNoOpposite:
			after, respond, hasResponse = qWantYesEmpty, acceptCmd, true
		case qWantYesEmpty:
			after = qNo
		case qWantYesOpposite:
			after = qNo
		}
	}

	n.setState(side, option, after)

	var status *Event
	if before != qYes && after == qYes {
		status = &Event{Kind: FrameOptionStatus, Option: option, Side: side, Enabled: true}
	} else if before == qYes && after != qYes {
		status = &Event{Kind: FrameOptionStatus, Option: option, Side: side, Enabled: false}
	}

	var response *Frame
	if hasResponse {
		response = &Frame{Kind: frameKindForCommand(respond), Option: option}
	}
	return status, response
}

func frameKindForCommand(cmd byte) FrameKind {
	switch cmd {
	case WILL:
		return FrameWill
	case WONT:
		return FrameWont
	case DO:
		return FrameDo
	case DONT:
		return FrameDont
	default:
		return FrameNoOperation
	}
}

// EnableLocal requests activation of option on the local side (sends
// WILL). Per §4.7, an unsupported option returns no frame; an idempotent
// re-request (already Yes or any Want state) also returns no frame.
func (n *Negotiator) EnableLocal(option OptionID) *Frame {
	return n.hostInitiate(SideLocal, option, true, n.supportedLocally[option], WILL)
}

// DisableLocal requests deactivation of option on the local side (sends
// WONT).
func (n *Negotiator) DisableLocal(option OptionID) *Frame {
	return n.hostInitiate(SideLocal, option, false, n.supportedLocally[option], WONT)
}

// EnableRemote requests the peer activate option on its side (sends
// DO).
func (n *Negotiator) EnableRemote(option OptionID) *Frame {
	return n.hostInitiate(SideRemote, option, true, n.supportedRemotely[option], DO)
}

// DisableRemote requests the peer deactivate option on its side (sends
// DONT).
func (n *Negotiator) DisableRemote(option OptionID) *Frame {
	return n.hostInitiate(SideRemote, option, false, n.supportedRemotely[option], DONT)
}

// hostInitiate implements the four host-initiated transition tables of
// §4.7. enable selects between the enable_* and disable_* halves of
// whichever side is being driven; supported gates a fresh enable_*
// request per §4.7 ("policy forbids initiation" for an unsupported
// option — no frame, no state change); cmd is the frame opcode emitted
// on a fresh request (WILL/WONT for local, DO/DONT for remote).
func (n *Negotiator) hostInitiate(side Side, option OptionID, enable, supported bool, cmd byte) *Frame {
	before := n.stateOf(side, option)
	var after qState
	emit := false

	if enable {
		switch before {
		case qNo:
			if supported {
				after, emit = qWantYesEmpty, true
			} else {
				after = qNo
			}
		case qYes:
			after = qYes
		case qWantNoEmpty:
			after = qWantNoOpposite
		case qWantNoOpposite, qWantYesEmpty, qWantYesOpposite:
			after = before
		}
	} else {
		switch before {
		case qYes:
			after, emit = qWantNoEmpty, true
		case qNo:
			after = qNo
		case qWantYesEmpty:
			after = qWantYesOpposite
		case qWantYesOpposite, qWantNoEmpty, qWantNoOpposite:
			after = before
		}
	}

	n.setState(side, option, after)
	if !emit {
		return nil
	}
	return &Frame{Kind: frameKindForCommand(cmd), Option: option}
}
