package telnet

// NegotiatorConfig is the declarative form of a Negotiator's supported
// sets, suitable for loading from a preferences file: which options
// this process will accept activating on its own side, and which it
// will accept the peer activating on its side. It carries no other
// negotiation policy - spec's option *policy* (when to request what)
// stays with the host.
type NegotiatorConfig struct {
	SupportedLocally  []OptionID
	SupportedRemotely []OptionID
}

// Build constructs a Negotiator from the configured sets.
func (c NegotiatorConfig) Build() *Negotiator {
	return NewNegotiator(c.SupportedLocally, c.SupportedRemotely)
}
