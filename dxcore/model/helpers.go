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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every value in the slice and returns all failures
// combined into a single error, or nil when every value is valid.
//
// Each failure is wrapped with the value's position in the slice and its
// TypeName, so callers can tell which element of a batch is incomplete:
//
//	model[1] (DeleteRuleOperation): dxews: invalid DeleteRuleOperation.RuleId: is required
//
// The whole slice is always processed; a failure at index 0 does not hide a
// failure at index 5. Empty slices are valid.
func ValidateAll[T Checkable](values []T) error {
	c := rxmerr.NewCollector()

	for i, v := range values {
		if err := v.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, v.TypeName(), err))
		}
	}

	return c.Err()
}

// MustValidate validates a value and panics if validation fails.
//
// Callers MUST only use MustValidate where an invalid value is a programming
// error, such as test fixtures or package-level constants.
func MustValidate[T Checkable](v T) T {
	if err := v.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", v.TypeName(), err))
	}
	return v
}

// SafeString returns Redacted for logging unless unsafe is true, in which
// case it returns String. Production logging SHOULD always pass false.
func SafeString[T Loggable](v T, unsafe bool) string {
	if unsafe {
		return v.String()
	}
	return v.Redacted()
}

// ToJSON validates a value and encodes it as JSON.
func ToJSON[T Checkable](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates a value and encodes it as YAML.
func ToYAML[T Checkable](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes JSON into m and validates the result. If FromJSON returns
// an error, the state of *m is undefined and MUST NOT be used.
func FromJSON[T any, PT interface {
	*T
	Model
}](data []byte, m PT) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML decodes YAML into m and validates the result. If FromYAML returns
// an error, the state of *m is undefined and MUST NOT be used.
func FromYAML[T any, PT interface {
	*T
	Model
}](data []byte, m PT) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}
