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
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const timeFormat = "2006-01-02T15:04:05-0700"
const termTimeFormat = "01-02|15:04:05.000"
const floatFormat = 'f'

// Format turns a Record into a serialized line of output.
type Format interface {
	Format(r *Record) []byte
}

// FormatFunc adapts a plain function to the Format interface.
type FormatFunc func(*Record) []byte

func (f FormatFunc) Format(r *Record) []byte { return f(r) }

// colors per level, matching the ANSI codes the teacher's terminal
// formatter uses: magenta for crit, red for error, yellow for warn, green
// for info, cyan for debug, blue for trace.
var levelColor = map[Lvl]int{
	LvlCrit:  35,
	LvlError: 31,
	LvlWarn:  33,
	LvlInfo:  32,
	LvlDebug: 36,
	LvlTrace: 34,
}

// TerminalFormat renders a Record as a single human-readable line,
// colorizing the level prefix when color is true. The caller is expected
// to wrap stdout/stderr through github.com/mattn/go-colorable first so
// the ANSI codes degrade gracefully on terminals (e.g. legacy Windows
// consoles) that don't support them natively -- see NewDefaultHandler in
// root.go.
func TerminalFormat(color bool) Format {
	return FormatFunc(func(r *Record) []byte {
		var buf bytes.Buffer
		lvl := r.Lvl.AlignedString()
		if color {
			c := levelColor[r.Lvl]
			fmt.Fprintf(&buf, "\x1b[%dm%s\x1b[0m[%s] %s", c, lvl, r.Time.Format(termTimeFormat), r.Msg)
		} else {
			fmt.Fprintf(&buf, "%s[%s] %s", lvl, r.Time.Format(termTimeFormat), r.Msg)
		}
		logfmtCtx(&buf, r.Ctx, color)
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

// msgJust is the minimum column width of the level+time+message prefix
// before context key/value pairs begin, matching the teacher's own
// terminal alignment constant.
const msgJust = 40

func logfmtCtx(buf *bytes.Buffer, ctx []interface{}, color bool) {
	// Pad the message column before the first key/value so aligned output
	// reads like the teacher's own terminal handler.
	if buf.Len() < msgJust {
		buf.WriteString(strings.Repeat(" ", msgJust-buf.Len()))
	}
	for i := 0; i < len(ctx); i += 2 {
		k, ok := ctx[i].(string)
		v := ctx[i+1]
		if !ok {
			k, v = errorKey, ctx[i]
		}
		if i != 0 {
			buf.WriteByte(' ')
		}
		if color {
			fmt.Fprintf(buf, "\x1b[%dm%s\x1b[0m=%s", 36, k, formatLogfmtValue(v))
		} else {
			fmt.Fprintf(buf, "%s=%s", k, formatLogfmtValue(v))
		}
	}
}

func formatLogfmtValue(value interface{}) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format(timeFormat)
	case error:
		return quoteIfNeeded(v.Error())
	case fmt.Stringer:
		return quoteIfNeeded(v.String())
	case string:
		return quoteIfNeeded(v)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(v).Float(), floatFormat, 3, 64)
	}
	return quoteIfNeeded(fmt.Sprintf("%+v", value))
}

func quoteIfNeeded(s string) string {
	if !strings.ContainsAny(s, " \t\n\"=") {
		return s
	}
	return strconv.Quote(s)
}

// LogfmtFormat renders a Record in logfmt (key=value) form, with no
// terminal coloring or column alignment -- suitable for log aggregation.
func LogfmtFormat() Format {
	return FormatFunc(func(r *Record) []byte {
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "t=%s lvl=%s msg=%s", r.Time.Format(timeFormat), r.Lvl, quoteIfNeeded(r.Msg))
		for i := 0; i < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			v := r.Ctx[i+1]
			if !ok {
				k, v = errorKey, r.Ctx[i]
			}
			fmt.Fprintf(&buf, " %s=%s", k, formatLogfmtValue(v))
		}
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

// JSONFormat renders a Record as one JSON object per line.
func JSONFormat() Format {
	return FormatFunc(func(r *Record) []byte {
		props := make(map[string]interface{}, 3+len(r.Ctx)/2)
		props["t"] = r.Time.Format(timeFormat)
		props["lvl"] = r.Lvl.String()
		props["msg"] = r.Msg
		for i := 0; i < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if !ok {
				k = errorKey
			}
			props[k] = r.Ctx[i+1]
		}
		b, err := json.Marshal(props)
		if err != nil {
			b, _ = json.Marshal(map[string]string{"LOG15_ERROR": err.Error()})
		}
		return append(b, '\n')
	})
}
