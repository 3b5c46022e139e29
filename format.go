package liblogger

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/raymanaeron/liblogger/sanitizer"
)

// lineSanitizer keeps every record on exactly one output line
var lineSanitizer = sanitizer.ForPolicy(sanitizer.PolicyTxt)

// spewConfig renders composite context values on a single line
var spewConfig = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// formatLine renders a record as one newline-terminated line:
//
//	<timestamp> [LEVEL] [file:line] [module::function] message | context
func formatLine(r Record, timestampFormat string) []byte {
	buf := make([]byte, 0, 128+len(r.Message)+len(r.Context))

	buf = r.Timestamp.AppendFormat(buf, timestampFormat)
	buf = append(buf, " ["...)
	buf = append(buf, levelToString(r.Level)...)
	buf = append(buf, "] ["...)
	if r.File == "" {
		buf = append(buf, '-')
	} else {
		buf = lineSanitizer.AppendSanitized(buf, r.File)
	}
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(r.Line), 10)
	buf = append(buf, "] ["...)
	buf = lineSanitizer.AppendSanitized(buf, r.Module)
	buf = append(buf, "::"...)
	buf = lineSanitizer.AppendSanitized(buf, r.Function)
	buf = append(buf, "] "...)
	buf = lineSanitizer.AppendSanitized(buf, r.Message)
	if r.Context != "" {
		buf = append(buf, " | "...)
		buf = lineSanitizer.AppendSanitized(buf, r.Context)
	}
	return append(buf, '\n')
}

// httpPayload is the JSON body posted by the HTTP sink
type httpPayload struct {
	Timestamp string  `json:"timestamp"`
	Level     string  `json:"level"`
	Message   string  `json:"message"`
	Context   *string `json:"context"`
	File      string  `json:"file"`
	Line      int     `json:"line"`
	Module    string  `json:"module"`
	Function  string  `json:"function"`
}

// formatJSON renders a record as the HTTP sink wire object
func formatJSON(r Record) ([]byte, error) {
	p := httpPayload{
		Timestamp: r.Timestamp.UTC().Format(time.RFC3339Nano),
		Level:     levelToString(r.Level),
		Message:   r.Message,
		File:      r.File,
		Line:      r.Line,
		Module:    r.Module,
		Function:  r.Function,
	}
	if r.Context != "" {
		ctx := r.Context
		p.Context = &ctx
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmtErrorf("failed to encode record: %w", err)
	}
	return data, nil
}

// FormatContext renders alternating key/value pairs as "k=v k2=v2".
// Values containing spaces, quotes or '=' are quoted. A trailing key
// without a value is kept under the key "!extra".
func FormatContext(kv ...any) string {
	if len(kv) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < len(kv); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i+1 >= len(kv) {
			sb.WriteString("!extra=")
			sb.WriteString(quoteIfNeeded(formatValue(kv[i])))
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(quoteIfNeeded(formatValue(kv[i+1])))
	}
	return sb.String()
}

// formatValue converts a single context value to text
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case time.Duration:
		return val.String()
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return spewConfig.Sprintf("%+v", val)
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}
