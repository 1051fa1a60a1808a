package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/hitcli/hit/packages/config"
	hithttp "github.com/hitcli/hit/packages/http"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

type ConsoleFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	verbose   bool
	noColor   bool
	yaml      bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithErrWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.errWriter = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithYAML switches body rendering to the structured key:value form.
func WithYAML(y bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.yaml = y
	}
}

// FormatRequest prints the outbound request trace: method, URL, final
// header set and proxy. Only called in verbose mode, before dispatch.
func (f *ConsoleFormatter) FormatRequest(req *hithttp.Request, proxy *config.Proxy) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s\n", bold(req.Method), cyan(req.URL))
	for _, k := range sortedKeys(req.Headers) {
		fmt.Fprintf(f.writer, "  %s: %s\n", k, req.Headers[k])
	}
	if proxy != nil {
		fmt.Fprintf(f.writer, "  via proxy %s:%s\n", proxy.Host, proxy.Port)
	}
	fmt.Fprintf(f.writer, "\n")
}

// FormatResponse renders a buffered response. In verbose mode the status
// line and headers come first; the body follows in YAML form, colorized
// JSON, or as plain text.
func (f *ConsoleFormatter) FormatResponse(resp *hithttp.Response) {
	if f.verbose {
		f.formatStatusHeaders(resp)
	}

	body := resp.Body
	if len(body) == 0 {
		return
	}

	if f.yaml {
		fmt.Fprint(f.writer, f.renderYAML(body))
		return
	}

	parsed := gjson.ParseBytes(body)
	if gjson.ValidBytes(body) && (parsed.IsObject() || parsed.IsArray()) {
		var sb strings.Builder
		f.writeJSON(&sb, parsed, 0)
		sb.WriteString("\n")
		fmt.Fprint(f.writer, sb.String())
		return
	}

	fmt.Fprintf(f.writer, "%s\n", strings.TrimRight(string(body), "\n"))
}

func (f *ConsoleFormatter) formatStatusHeaders(resp *hithttp.Response) {
	statusColor := color.New(color.FgGreen)
	switch {
	case resp.StatusCode >= 400:
		statusColor = color.New(color.FgRed)
	case resp.StatusCode >= 300:
		statusColor = color.New(color.FgYellow)
	}

	fmt.Fprintf(f.writer, "%s\n", statusColor.Sprint(resp.Status))

	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	cyan := color.New(color.FgCyan).SprintFunc()
	for _, name := range names {
		for _, value := range resp.Headers[name] {
			fmt.Fprintf(f.writer, "%s: %s\n", cyan(name), value)
		}
	}
	fmt.Fprintf(f.writer, "\n")
}

// renderYAML renders any body through yaml.v3: JSON becomes nested
// key:value indentation, anything else is emitted as a scalar.
func (f *ConsoleFormatter) renderYAML(body []byte) string {
	var value any
	if gjson.ValidBytes(body) {
		value = gjson.ParseBytes(body).Value()
	} else {
		value = strings.TrimRight(string(body), "\n")
	}

	out, err := yaml.Marshal(value)
	if err != nil {
		return string(body)
	}
	return string(out)
}

const jsonIndent = "  "

// writeJSON pretty-prints a parsed JSON value at full depth, colorized by
// value type. Key order is preserved as received.
func (f *ConsoleFormatter) writeJSON(sb *strings.Builder, v gjson.Result, depth int) {
	keyCol := color.New(color.FgBlue).SprintFunc()
	strCol := color.New(color.FgGreen).SprintFunc()
	numCol := color.New(color.FgCyan).SprintFunc()
	boolCol := color.New(color.FgYellow).SprintFunc()
	nullCol := color.New(color.Faint).SprintFunc()

	pad := strings.Repeat(jsonIndent, depth)
	inner := strings.Repeat(jsonIndent, depth+1)

	switch {
	case v.IsObject():
		var keys, values []gjson.Result
		v.ForEach(func(key, value gjson.Result) bool {
			keys = append(keys, key)
			values = append(values, value)
			return true
		})
		if len(keys) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i := range keys {
			sb.WriteString(inner)
			sb.WriteString(keyCol(keys[i].Raw))
			sb.WriteString(": ")
			f.writeJSON(sb, values[i], depth+1)
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(pad)
		sb.WriteString("}")
	case v.IsArray():
		items := v.Array()
		if len(items) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, item := range items {
			sb.WriteString(inner)
			f.writeJSON(sb, item, depth+1)
			if i < len(items)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(pad)
		sb.WriteString("]")
	default:
		switch v.Type {
		case gjson.String:
			sb.WriteString(strCol(v.Raw))
		case gjson.Number:
			sb.WriteString(numCol(v.Raw))
		case gjson.True, gjson.False:
			sb.WriteString(boolCol(v.Raw))
		case gjson.Null:
			sb.WriteString(nullCol("null"))
		default:
			sb.WriteString(v.Raw)
		}
	}
}

func (f *ConsoleFormatter) FormatWarning(format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(f.errWriter, "%s %s\n", yellow("warning:"), fmt.Sprintf(format, args...))
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.errWriter, "%s %v\n", red("Error:"), err)
}

// FormatSaved reports a completed body download.
func (f *ConsoleFormatter) FormatSaved(path string, size int64) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s (%s)\n", green("Saved:"), path, humanBytes(size))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
