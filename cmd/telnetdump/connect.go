package main

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/huhlig/termionix/ansi"
	"github.com/huhlig/termionix/telnet"
)

var connectCmd = &cobra.Command{
	Use:   "connect <host:port>",
	Short: "Dial a Telnet peer and proxy the terminal to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnect,
}

func runConnect(cmd *cobra.Command, args []string) error {
	addr := args[0]
	sessionID := uuid.New().String()
	logger := slog.Default().With("session", sessionID)

	pw, err := watchPreferences(configPath, nil)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	defer pw.Close()

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	logger.Info("telnetdump: connected", "addr", addr)

	sess := newSession(sessionID, conn, pw, logger)
	pw.onChange = sess.rebuild
	return sess.run()
}

// session owns one proxied connection: bytes from conn flow through a
// Decoder, Data events go to the operator's stdout, every other event
// is rendered to stderr; bytes typed by the operator flow through an
// Encoder back to conn.
type session struct {
	id     string
	conn   net.Conn
	logger *slog.Logger

	mu        sync.Mutex
	decoder   *telnet.Decoder
	encoder   *telnet.Encoder
	negot     *telnet.Negotiator
	colorMode ansi.ColorMode
}

func newSession(id string, conn net.Conn, prefs *preferencesWatcher, logger *slog.Logger) *session {
	s := &session{id: id, conn: conn, logger: logger}
	s.rebuild(prefs.Preferences())
	return s
}

func (s *session) rebuild(prefs Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.negot = prefs.negotiatorConfig().Build()
	s.decoder = telnet.NewDecoder(s.negot, prefs.MaxSubnegotiation, s.logger)
	s.encoder = telnet.NewEncoder(s.logger)
	s.colorMode = prefs.colorMode()
}

func (s *session) run() error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer term.Restore(int(os.Stdin.Fd()), oldState)
	} else {
		s.logger.Warn("telnetdump: stdin is not a terminal, running without raw mode", "error", err)
	}

	errCh := make(chan error, 2)
	go s.readLoop(errCh)
	go s.writeLoop(errCh)
	return <-errCh
}

// readLoop pulls bytes off the network, decodes them, and splits the
// result: Data events go to stdout unrendered, every other event is
// logged, and any response frames the negotiator queued are encoded
// straight back out.
func (s *session) readLoop(errCh chan<- error) {
	buf := make([]byte, 4096)
	var dataBuf []byte

	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			s.mu.Lock()
			events, outbound := s.decoder.Decode(buf[:n])
			colorMode := s.colorMode
			s.mu.Unlock()

			dataBuf = dataBuf[:0]
			for _, e := range events {
				if e.Kind == telnet.FrameData {
					dataBuf = append(dataBuf, e.Data)
					continue
				}
				if len(dataBuf) > 0 {
					os.Stdout.Write(dataBuf)
					dataBuf = dataBuf[:0]
				}
				fmt.Fprintln(os.Stderr, renderEvent(s.id, e, colorMode))
			}
			if len(dataBuf) > 0 {
				os.Stdout.Write(dataBuf)
			}

			if len(outbound) > 0 {
				s.mu.Lock()
				s.encoder.Reset()
				s.encoder.Encode(outbound...)
				out := append([]byte(nil), s.encoder.Bytes()...)
				s.mu.Unlock()
				if _, err := s.conn.Write(out); err != nil {
					errCh <- fmt.Errorf("write negotiation response: %w", err)
					return
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				errCh <- nil
				return
			}
			errCh <- fmt.Errorf("read from %s: %w", s.conn.RemoteAddr(), err)
			return
		}
	}
}

// writeLoop proxies the operator's keystrokes to the peer, doubling any
// literal IAC byte the way the framing layer requires.
func (s *session) writeLoop(errCh chan<- error) {
	buf := make([]byte, 256)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.encoder.Reset()
			for _, b := range buf[:n] {
				s.encoder.Encode(telnet.Frame{Kind: telnet.FrameData, Data: b})
			}
			out := append([]byte(nil), s.encoder.Bytes()...)
			s.mu.Unlock()
			if _, werr := s.conn.Write(out); werr != nil {
				errCh <- fmt.Errorf("write to %s: %w", s.conn.RemoteAddr(), werr)
				return
			}
		}
		if err != nil {
			errCh <- nil
			return
		}
	}
}
