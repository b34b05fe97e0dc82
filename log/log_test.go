// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLvlFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Lvl
		wantErr bool
	}{
		{"info", LvlInfo, false},
		{"WARN", LvlWarn, false},
		{"warning", LvlWarn, false},
		{"bogus", LvlDebug, true},
	}
	for _, tt := range tests {
		got, err := LvlFromString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("LvlFromString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("LvlFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerContextPersists(t *testing.T) {
	out := new(bytes.Buffer)
	logger := New()
	logger.SetHandler(StreamHandler(out, LogfmtFormat()))

	session := logger.New("component", "session", "id", 7)
	session.Info("hello", "extra", "1")

	line := out.String()
	if !strings.Contains(line, "component=session") || !strings.Contains(line, "id=7") {
		t.Fatalf("context did not persist into child logger output: %q", line)
	}
	if !strings.Contains(line, "extra=1") {
		t.Fatalf("call-site context missing: %q", line)
	}
}

func TestLvlFilterHandler(t *testing.T) {
	out := new(bytes.Buffer)
	logger := New()
	logger.SetHandler(LvlFilterHandler(LvlWarn, StreamHandler(out, LogfmtFormat())))

	logger.Info("should be dropped")
	if out.Len() != 0 {
		t.Fatalf("expected info record to be filtered, got %q", out.String())
	}
	logger.Warn("should pass")
	if !strings.Contains(out.String(), "should pass") {
		t.Fatalf("expected warn record to pass filter, got %q", out.String())
	}
}

func TestNormalizeOddContext(t *testing.T) {
	out := new(bytes.Buffer)
	logger := New()
	logger.SetHandler(StreamHandler(out, LogfmtFormat()))

	logger.Info("odd", "onlykey")
	if !strings.Contains(out.String(), "onlykey=") {
		t.Fatalf("expected odd context to be paired with a filler value, got %q", out.String())
	}
}

func TestJSONFormat(t *testing.T) {
	out := new(bytes.Buffer)
	logger := New()
	logger.SetHandler(StreamHandler(out, JSONFormat()))

	logger.Error("boom", "code", 500)
	if !strings.Contains(out.String(), `"msg":"boom"`) {
		t.Fatalf("expected JSON msg field, got %q", out.String())
	}
}

func TestMultiHandler(t *testing.T) {
	a, b := new(bytes.Buffer), new(bytes.Buffer)
	logger := New()
	logger.SetHandler(MultiHandler(StreamHandler(a, LogfmtFormat()), StreamHandler(b, LogfmtFormat())))

	logger.Info("fan out")
	if a.Len() == 0 || b.Len() == 0 {
		t.Fatalf("expected both handlers to receive the record: a=%q b=%q", a.String(), b.String())
	}
}
