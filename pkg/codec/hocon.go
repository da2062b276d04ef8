package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/perfgate/perfgate/pkg/canonical"
)

// HoconCodec renders the document as nested HOCON braces. Encode only; the
// CI side parses it with its own HOCON tooling.
type HoconCodec struct{}

func (HoconCodec) Name() string { return "hocon" }

func (HoconCodec) Encode(doc *canonical.Document) (string, error) {
	var b strings.Builder
	writeHoconObject(&b, doc.Tree(), 0)
	return b.String(), nil
}

func writeHoconObject(b *strings.Builder, obj map[string]interface{}, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, key := range sortedKeys(obj) {
		switch child := obj[key].(type) {
		case map[string]interface{}:
			b.WriteString(indent)
			b.WriteString(key)
			b.WriteString(" {\n")
			writeHoconObject(b, child, depth+1)
			b.WriteString(indent)
			b.WriteString("}\n")
		default:
			b.WriteString(indent)
			b.WriteString(key)
			b.WriteString(" = ")
			b.WriteString(hoconValue(child))
			b.WriteByte('\n')
		}
	}
}

func hoconValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case string:
		// duration strings stay bare so the consumer keeps them typed
		if canonical.IsDurationString(x) {
			return x
		}
		return `"` + strings.ReplaceAll(x, `"`, `\"`) + `"`
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, elem := range x {
			parts = append(parts, hoconValue(elem))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}
