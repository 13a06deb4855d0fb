package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/huhlig/termionix/ansi"
	"github.com/huhlig/termionix/telnet"
)

// Preferences is telnetdump's YAML configuration: which options to
// accept on each side, the color fidelity to render with, and the
// subnegotiation size cap to enforce.
type Preferences struct {
	SupportedLocally  []string `yaml:"supported_locally"`
	SupportedRemotely []string `yaml:"supported_remotely"`
	ColorMode         string   `yaml:"color_mode"`
	MaxSubnegotiation int      `yaml:"max_subnegotiation_bytes"`
}

// defaultPreferences mirrors the baseline a MUD client typically offers:
// binary-safe, no local echo (the server usually owns it), and the
// MUD-specific extensions telnetdump knows how to render.
func defaultPreferences() Preferences {
	return Preferences{
		SupportedLocally:  []string{"TERMINAL-TYPE", "NAWS", "BINARY", "SUPPRESS-GO-AHEAD"},
		SupportedRemotely: []string{"BINARY", "SUPPRESS-GO-AHEAD", "MSDP", "GMCP", "EOR"},
		ColorMode:         "truecolor",
		MaxSubnegotiation: telnet.DefaultMaxSubnegotiationSize,
	}
}

// loadPreferences reads path if it exists, falling back to defaults for
// a missing file - a fresh checkout should run without one.
func loadPreferences(path string) (Preferences, error) {
	prefs := defaultPreferences()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	return prefs, nil
}

func (p Preferences) negotiatorConfig() telnet.NegotiatorConfig {
	return telnet.NegotiatorConfig{
		SupportedLocally:  resolveOptionNames(p.SupportedLocally),
		SupportedRemotely: resolveOptionNames(p.SupportedRemotely),
	}
}

func resolveOptionNames(names []string) []telnet.OptionID {
	ids := make([]telnet.OptionID, 0, len(names))
	for _, name := range names {
		id, ok := telnet.OptionByName(name)
		if !ok {
			slog.Warn("telnetdump: unknown option name in preferences, ignoring", "name", name)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (p Preferences) colorMode() ansi.ColorMode {
	switch p.ColorMode {
	case "none":
		return ansi.ColorModeNone
	case "basic16":
		return ansi.ColorModeBasic16
	case "fixed256":
		return ansi.ColorModeFixed256
	default:
		return ansi.ColorModeTrueColor
	}
}

// preferencesWatcher hot-reloads Preferences from disk and calls onChange
// with each successfully parsed version, following the debounce-free,
// best-effort reload pattern used for BBS menu configs in the pack: a
// parse failure logs and keeps the previous preferences in effect.
type preferencesWatcher struct {
	mu       sync.RWMutex
	current  Preferences
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Preferences)
}

func watchPreferences(path string, onChange func(Preferences)) (*preferencesWatcher, error) {
	prefs, err := loadPreferences(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create preferences watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		// A not-yet-created preferences file is not fatal: watch its
		// directory so a later `mv` or editor save still triggers.
		slog.Warn("telnetdump: cannot watch preferences file directly, watching its directory instead", "path", path, "error", err)
		if derr := w.Add(filepath.Dir(path)); derr != nil {
			slog.Warn("telnetdump: cannot watch preferences directory, hot-reload disabled", "path", path, "error", derr)
		}
	}

	pw := &preferencesWatcher{current: prefs, path: path, watcher: w, onChange: onChange}
	go pw.loop()
	return pw, nil
}

func (pw *preferencesWatcher) loop() {
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pw.reload()
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("telnetdump: preferences watcher error", "error", err)
		}
	}
}

func (pw *preferencesWatcher) reload() {
	prefs, err := loadPreferences(pw.path)
	if err != nil {
		slog.Warn("telnetdump: failed to reload preferences, keeping previous", "error", err)
		return
	}
	pw.mu.Lock()
	pw.current = prefs
	pw.mu.Unlock()
	if pw.onChange != nil {
		pw.onChange(prefs)
	}
}

func (pw *preferencesWatcher) Preferences() Preferences {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return pw.current
}

func (pw *preferencesWatcher) Close() error {
	return pw.watcher.Close()
}
