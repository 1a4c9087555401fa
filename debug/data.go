package debug

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Data is an ordered set of key/value pairs attached to a log line.
type Data = orderedmap.OrderedMap[string, any]

// NewData returns an empty Data.
func NewData() *Data {
	return orderedmap.NewOrderedMap[string, any]()
}

// OrderedMapToString renders the data as "[k1=v1 k2=v2]" in insertion order.
func OrderedMapToString(data *Data) string {
	if data == nil {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	count := data.Len()
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		fmt.Fprintf(&b, "%s=%v", key, v)

		count--
		if count > 0 {
			b.WriteByte(' ')
		}
	}
	b.WriteByte(']')
	return b.String()
}
