package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/perfgate/perfgate/pkg/canonical"
)

// PropertiesCodec renders the document as Java properties: one dot-path
// key per leaf, the whole key lowercased. Encode only.
type PropertiesCodec struct{}

func (PropertiesCodec) Name() string { return "properties" }

func (PropertiesCodec) Encode(doc *canonical.Document) (string, error) {
	var b strings.Builder
	b.WriteString("# perfgate test configuration\n")

	tree := doc.Tree()
	for _, root := range sortedKeys(tree) {
		writePropertiesBranch(&b, strings.ToLower(root), tree[root])
	}

	return b.String(), nil
}

func writePropertiesBranch(b *strings.Builder, path string, v interface{}) {
	switch x := v.(type) {
	case nil:
		// absent leaves are not emitted
	case map[string]interface{}:
		for _, k := range sortedKeys(x) {
			writePropertiesBranch(b, path+"."+strings.ToLower(k), x[k])
		}
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, elem := range x {
			parts = append(parts, propertiesValue(elem))
		}
		b.WriteString(path + "=" + strings.Join(parts, ",") + "\n")
	default:
		b.WriteString(path + "=" + propertiesValue(x) + "\n")
	}
}

func propertiesValue(v interface{}) string {
	switch x := v.(type) {
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
		if canonical.IsDurationString(x) {
			return x
		}
		return escapeProperties(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// escapeProperties backslash-escapes the characters a properties parser
// treats specially. Colons are deliberately left alone.
func escapeProperties(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
		"=", `\=`,
		"#", `\#`,
		"!", `\!`,
	)
	return r.Replace(s)
}
