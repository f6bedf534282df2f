package cosmos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// CheckMsgs scans every message for leading-zero amounts. Paths are relative
// to each message; MsgIndex says which one.
func CheckMsgs(msgs []network.Msg) []network.AmountViolation {
	var violations []network.AmountViolation
	for i, m := range msgs {
		for _, v := range CollectLeadingZeroAmounts(m) {
			v.MsgIndex = i
			violations = append(violations, v)
		}
	}
	return violations
}

// CollectLeadingZeroAmounts walks data and reports every "amount" key whose
// value, as a trimmed string, starts with '0' and is longer than one
// character. Strings that hold JSON are parsed and walked too. Object keys
// join with '.', array indices use brackets.
func CollectLeadingZeroAmounts(data any) []network.AmountViolation {
	var out []network.AmountViolation
	walkAmounts(normalizeJSON(data), "", &out)
	return out
}

// normalizeJSON converts typed Go values, nested ones included, into the
// generic JSON tree.
func normalizeJSON(data any) any {
	if _, ok := data.(string); ok || data == nil {
		return data
	}
	bz, err := json.Marshal(data)
	if err != nil {
		return data
	}
	v, ok := decodeJSON(bz)
	if !ok {
		return data
	}
	return v
}

func decodeJSON(bz []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return v, true
}

func walkAmounts(node any, path string, out *[]network.AmountViolation) {
	switch v := node.(type) {
	case []any:
		for i, item := range v {
			walkAmounts(item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			if k == "amount" && hasLeadingZero(v[k]) {
				*out = append(*out, network.AmountViolation{Path: child, Amount: v[k]})
			}
			walkAmounts(v[k], child, out)
		}
	case string:
		if parsed, ok := decodeJSON([]byte(v)); ok {
			if s, isString := parsed.(string); isString && s == v {
				return
			}
			walkAmounts(parsed, path, out)
		}
	}
}

func hasLeadingZero(v any) bool {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
	case float64:
		s = fmt.Sprint(val)
	default:
		return false
	}
	s = strings.TrimSpace(s)
	return len(s) > 1 && s[0] == '0'
}
