// Package scalar encodes Go values to XML text content and decodes text back
// into typed Go values, following the scalar kind classification of the
// schema's builtin datatypes.
package scalar

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soapbind-project/soapbind-go/pkg/xsd"
)

// Encode renders a Go value as XML text content
func Encode(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case time.Time:
		return val.Format(time.RFC3339), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(val), nil
	default:
		return "", fmt.Errorf("unsupported scalar value of type %T", v)
	}
}

// Decode parses XML text content into a typed Go value per the scalar kind:
// integers decode to int64, decimals to float64, booleans to bool, base64 to
// []byte, everything else (including dates) stays a string. Empty text
// decodes to nil for non-string kinds.
func Decode(text string, kind xsd.ScalarKind) (any, error) {
	switch kind {
	case xsd.KindInteger:
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q", text)
		}
		return n, nil
	case xsd.KindDecimal:
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal value %q", text)
		}
		return f, nil
	case xsd.KindBoolean:
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q", text)
		}
		return b, nil
	case xsd.KindBase64:
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		data, err := base64.StdEncoding.DecodeString(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 value %q", text)
		}
		return data, nil
	default:
		// dates and times stay in their lexical form
		return text, nil
	}
}
