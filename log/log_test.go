// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestWithContextCarriesAttrs(t *testing.T) {
	buf := new(bytes.Buffer)
	SetupTerminal(buf)
	defer Verbosity().Set(LevelInfo)

	l := WithContext("pkg", "logtest")
	l.Info("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "pkg=logtest") {
		t.Errorf("missing context attr in output: %q", out)
	}
	if !strings.Contains(out, "k=v") {
		t.Errorf("missing call attr in output: %q", out)
	}
}

func TestVerbosityFiltersBelowLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	SetupTerminal(buf)
	defer Verbosity().Set(LevelInfo)

	Verbosity().Set(LevelWarn)
	l := WithContext("pkg", "logtest")
	l.Info("filtered out")
	if buf.Len() != 0 {
		t.Errorf("info line emitted at warn verbosity: %q", buf.String())
	}

	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn line missing at warn verbosity: %q", buf.String())
	}
}
