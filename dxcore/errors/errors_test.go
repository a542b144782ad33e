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

package errors

import (
	stderrors "errors"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			"dictionary key",
			&ParseError{Type: "PhysicalAddressKey", Value: "Office"},
			"dxews: invalid PhysicalAddressKey value: Office",
		},
		{
			"namespace",
			&ParseError{Type: "Namespace", Value: "x"},
			"dxews: invalid Namespace value: x",
		},
		{
			"empty value",
			&ParseError{Type: "FlagStatus", Value: ""},
			"dxews: invalid FlagStatus value: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MarshalError
		want string
	}{
		{
			"positive value",
			&MarshalError{Type: "EmailAddressKey", Value: 99},
			"dxews: cannot marshal invalid EmailAddressKey value: 99",
		},
		{
			"negative value",
			&MarshalError{Type: "Namespace", Value: -1},
			"dxews: cannot marshal invalid Namespace value: -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("MarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UnmarshalError
		want string
	}{
		{
			"without position",
			&UnmarshalError{Type: "ServiceId", Reason: "empty data"},
			"dxews: cannot unmarshal ServiceId: empty data",
		},
		{
			"with position",
			&UnmarshalError{
				Type:   "Flag",
				Data:   []byte("yesterday"),
				Reason: "invalid date-time",
				Line:   3,
				Column: 7,
			},
			"dxews: cannot unmarshal Flag at 3:7: invalid date-time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UnmarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnmarshalError_Unwrap(t *testing.T) {
	cause := stderrors.New("illegal base64 data at input byte 4")
	err := error(&UnmarshalError{Type: "MimeContent", Reason: "invalid base64", Err: cause})

	if !stderrors.Is(err, cause) {
		t.Errorf("errors.Is(UnmarshalError, cause) = false, want true")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"with field",
			&ValidationError{Type: "DeleteRuleOperation", Field: "RuleId", Reason: ReasonRequired},
			"dxews: invalid DeleteRuleOperation.RuleId: is required",
		},
		{
			"without field",
			&ValidationError{Type: "Rule", Reason: "inconsistent"},
			"dxews: invalid Rule: inconsistent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Required(t *testing.T) {
	if !(&ValidationError{Reason: ReasonRequired}).Required() {
		t.Errorf("Required() = false, want true")
	}
	if (&ValidationError{Reason: "too long"}).Required() {
		t.Errorf("Required() = true, want false")
	}
}

func TestArgumentError_Error(t *testing.T) {
	err := &ArgumentError{Param: "uniqueID", Reason: "must not be empty"}
	want := "dxews: invalid argument uniqueID: must not be empty"
	if got := err.Error(); got != want {
		t.Errorf("ArgumentError.Error() = %q, want %q", got, want)
	}
}

func TestServiceVersionError_Error(t *testing.T) {
	err := &ServiceVersionError{Element: "Flag", Required: "Exchange2013", Requested: "Exchange2010_SP1"}
	want := "dxews: Flag requires server version Exchange2013 or later, requested Exchange2010_SP1"
	if got := err.Error(); got != want {
		t.Errorf("ServiceVersionError.Error() = %q, want %q", got, want)
	}
}

func TestErrors_Implements_Error_Interface(t *testing.T) {
	var _ error = (*ParseError)(nil)
	var _ error = (*MarshalError)(nil)
	var _ error = (*UnmarshalError)(nil)
	var _ error = (*ValidationError)(nil)
	var _ error = (*ArgumentError)(nil)
	var _ error = (*ServiceVersionError)(nil)
}
