// Package compare cross-checks jsonsax's parse results against
// encoding/json, and exists to give the differential/benchmark tests
// somewhere to live. It is not part of the public API.
package compare

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-jsonsax/jsonsax"
)

// Equivalent reports whether jsonsax and encoding/json agree on the
// structure and scalar values of doc. It returns an error (rather than
// false) when either parser itself fails, so a caller can tell a genuine
// disagreement apart from an input that simply isn't valid JSON.
func Equivalent(doc []byte) (bool, error) {
	ours, err := jsonsax.ParseTree(doc)
	if err != nil {
		return false, fmt.Errorf("jsonsax: %w", err)
	}

	var theirs interface{}
	if err := json.Unmarshal(doc, &theirs); err != nil {
		return false, fmt.Errorf("encoding/json: %w", err)
	}

	return nodeMatches(ours, theirs), nil
}

func nodeMatches(n *jsonsax.Node, v interface{}) bool {
	switch n.Type() {
	case jsonsax.NodeNull:
		return v == nil
	case jsonsax.NodeBoolean:
		b, _ := n.AsBoolean()
		vb, ok := v.(bool)
		return ok && b == vb
	case jsonsax.NodeInteger:
		i, _ := n.AsInteger()
		vf, ok := v.(float64)
		return ok && float64(i) == vf
	case jsonsax.NodeNumber:
		f, _ := n.AsNumber()
		vf, ok := v.(float64)
		return ok && floatsEqual(f, vf)
	case jsonsax.NodeString:
		s, _ := n.AsString()
		vs, ok := v.(string)
		return ok && s == vs
	case jsonsax.NodeArray:
		arr, _ := n.AsArray()
		va, ok := v.([]interface{})
		if !ok || len(arr) != len(va) {
			return false
		}
		for i := range arr {
			if !nodeMatches(arr[i], va[i]) {
				return false
			}
		}
		return true
	case jsonsax.NodeObject:
		obj, _ := n.AsObject()
		vm, ok := v.(map[string]interface{})
		if !ok || len(obj) != len(vm) {
			return false
		}
		for k, child := range obj {
			vv, present := vm[k]
			if !present || !nodeMatches(child, vv) {
				return false
			}
		}
		return true
	}
	return false
}

func floatsEqual(a, b float64) bool {
	if a == b {
		return true
	}
	// encoding/json and jsonsax's strconv.ParseFloat both ultimately go
	// through the same float-parsing routine, so a plain == is expected
	// to hold; this tolerance only guards against the one edge case where
	// ULP rounding differs (very large exponents), not a real difference.
	diff := math.Abs(a - b)
	return diff <= math.Abs(a)*1e-12
}
