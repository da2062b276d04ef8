package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/perfgate/perfgate/pkg/canonical"
	"github.com/perfgate/perfgate/pkg/logger"
)

// EnvCodec is the strict-ENV encoding: a depth-first flattening of the
// document into KEY=value lines, path segments joined with a double
// underscore. It is the only codec with a decode path, used to verify
// round-trips.
type EnvCodec struct{}

func (EnvCodec) Name() string { return "env" }

// root branch names are uppercased as a whole, not segment-normalized.
var envRoots = map[string]string{
	"userDefinedVariable": "USERDEFINEDVARIABLE",
	"test":                "TEST",
}

var envRootsBack = map[string]string{
	"USERDEFINEDVARIABLE": "userDefinedVariable",
	"TEST":                "test",
}

func (EnvCodec) Encode(doc *canonical.Document) (string, error) {
	var b strings.Builder
	b.WriteString("# perfgate strict-env configuration\n")

	tree := doc.Tree()
	for _, root := range sortedKeys(tree) {
		rootKey, ok := envRoots[root]
		if !ok {
			rootKey = strings.ToUpper(root)
		}
		writeEnvBranch(&b, []string{rootKey}, tree[root])
	}

	return b.String(), nil
}

func writeEnvBranch(b *strings.Builder, path []string, v interface{}) {
	switch x := v.(type) {
	case nil:
		// null leaves are skipped entirely
	case map[string]interface{}:
		for _, k := range sortedKeys(x) {
			writeEnvBranch(b, append(path, envSegment(k)), x[k])
		}
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, elem := range x {
			parts = append(parts, envScalar(elem))
		}
		writeEnvLeaf(b, path, strings.Join(parts, ","))
	default:
		writeEnvLeaf(b, path, envScalar(x))
	}
}

func writeEnvLeaf(b *strings.Builder, path []string, raw string) {
	b.WriteString(strings.Join(path, "__"))
	b.WriteByte('=')
	b.WriteString(envQuote(raw))
	b.WriteByte('\n')
}

// envSegment normalizes one path segment: an underscore before each
// internal capital, hyphens to underscores, then uppercased. Segments that
// still contain characters outside [A-Z0-9_] are emitted anyway with a
// diagnostic.
func envSegment(seg string) string {
	var b strings.Builder
	for i, r := range seg {
		switch {
		case r == '-':
			b.WriteByte('_')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	normalized := strings.ToUpper(b.String())

	for _, r := range normalized {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			logger.Warnf("env key segment %q contains characters outside [A-Z0-9_]", normalized)
			break
		}
	}
	return normalized
}

func envScalar(v interface{}) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// envQuote wraps the value in backslash-escaped double quotes only when it
// contains whitespace, $, ", backtick or backslash. Dots and slashes never
// force quoting. Newlines and carriage returns are escaped so a quoted
// value always stays on one line and survives the line-based decoder.
func envQuote(raw string) string {
	if !strings.ContainsAny(raw, " \t\n\r$\"`\\") {
		return raw
	}
	escaped := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
	).Replace(raw)
	return `"` + escaped + `"`
}

// Decode parses strict-ENV text back into a canonical document. The
// reverse camelCase transform (_x to X) is a best-effort heuristic: it
// cannot reconstruct names that contained adjacent capitals or digits next
// to capitals. That loss is accepted, not worked around.
func (EnvCodec) Decode(text string) (*canonical.Document, error) {
	tree := map[string]interface{}{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		key, rawValue := line[:idx], line[idx+1:]

		segments := strings.Split(key, "__")
		root, ok := envRootsBack[segments[0]]
		if !ok {
			continue
		}

		path := make([]string, 0, len(segments)-1)
		for _, seg := range segments[1:] {
			path = append(path, envSegmentBack(seg))
		}
		if len(path) == 0 {
			continue
		}

		assignPath(tree, append([]string{root}, path...), envParseValue(rawValue))
	}

	return canonical.FromTree(tree), nil
}

// envSegmentBack lowercases a segment and restores camelCase humps: each
// underscore-letter pair becomes the uppercased letter.
func envSegmentBack(seg string) string {
	lower := strings.ToLower(seg)
	var b strings.Builder
	for i := 0; i < len(lower); i++ {
		if lower[i] == '_' && i+1 < len(lower) && lower[i+1] >= 'a' && lower[i+1] <= 'z' {
			b.WriteByte(lower[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(lower[i])
	}
	return b.String()
}

func envParseValue(raw string) interface{} {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if isAllDigits(raw) {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	if dot := strings.Index(raw, "."); dot > 0 && dot < len(raw)-1 &&
		isAllDigits(raw[:dot]) && isAllDigits(raw[dot+1:]) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return envUnquote(raw)
}

func envUnquote(raw string) string {
	if len(raw) < 2 || !strings.HasPrefix(raw, `"`) || !strings.HasSuffix(raw, `"`) {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' || i+1 >= len(inner) {
			b.WriteByte(inner[i])
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func assignPath(tree map[string]interface{}, path []string, value interface{}) {
	node := tree
	for _, seg := range path[:len(path)-1] {
		child, ok := node[seg].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			node[seg] = child
		}
		node = child
	}
	node[path[len(path)-1]] = value
}
