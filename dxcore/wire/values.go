/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package wire

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the layout used for every date-time written to the
// wire. Values are always converted to UTC first. Fractional seconds are
// kept, without trailing zeros.
const DateTimeLayout = "2006-01-02T15:04:05.999999999Z"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatValue converts a scalar into its wire text.
//
// Supported kinds are string, bool, the signed integer types, time.Time,
// []byte (base64) and anything implementing encoding.TextMarshaler or
// fmt.Stringer, checked in that order.
func FormatValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case time.Time:
		return x.UTC().Format(DateTimeLayout), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(x), nil
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("unsupported scalar type %T", v)
	}
}

// ParseBool parses an xs:boolean lexical value.
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

// ParseDateTime parses an xs:dateTime value. Values without a zone are
// taken as UTC; date-only values are accepted as midnight UTC. The result
// is always in UTC.
func ParseDateTime(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}

// ParseBase64 decodes an xs:base64Binary value. Whitespace inside the value,
// such as line breaks inserted by servers, is ignored.
func ParseBase64(s string) ([]byte, error) {
	compact := strings.Join(strings.Fields(s), "")
	return base64.StdEncoding.DecodeString(compact)
}
