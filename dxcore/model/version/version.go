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

// Package version models the server schema version a request targets.
//
// Each schema version corresponds to a product build line, which is what a
// server reports about itself. ServerVersion keeps the named constant used
// on the wire ("Exchange2010_SP1") and maps it onto a semantic version
// ("14.1.0") so that build numbers reported by servers can be compared with
// the versions that introduced individual properties.
package version

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model"
	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// ServerVersion identifies a server schema version. Constants are declared
// oldest first, so the natural integer order is the release order.
type ServerVersion int

const (
	// Exchange2007SP1 is the oldest schema version dxews can target and the
	// zero value.
	Exchange2007SP1 ServerVersion = iota
	Exchange2010
	Exchange2010SP1
	Exchange2010SP2
	Exchange2013
	Exchange2013SP1
)

// Latest is the newest schema version known to dxews.
const Latest = Exchange2013SP1

var _ model.Model = (*ServerVersion)(nil)

type versionInfo struct {
	name   string
	semver bsemver.Version
}

var versions = [...]versionInfo{
	Exchange2007SP1: {"Exchange2007_SP1", bsemver.MustParse("8.1.0")},
	Exchange2010:    {"Exchange2010", bsemver.MustParse("14.0.0")},
	Exchange2010SP1: {"Exchange2010_SP1", bsemver.MustParse("14.1.0")},
	Exchange2010SP2: {"Exchange2010_SP2", bsemver.MustParse("14.2.0")},
	Exchange2013:    {"Exchange2013", bsemver.MustParse("15.0.0")},
	Exchange2013SP1: {"Exchange2013_SP1", bsemver.MustParse("15.0.1")},
}

// String returns the wire name of the version, for example
// "Exchange2010_SP1", or "unknown" for values outside the known set.
func (v ServerVersion) String() string {
	if !v.Valid() {
		return "unknown"
	}
	return versions[v].name
}

// Semver returns the build line the version corresponds to. It returns the
// zero semantic version for values outside the known set.
func (v ServerVersion) Semver() bsemver.Version {
	if !v.Valid() {
		return bsemver.Version{}
	}
	return versions[v].semver
}

// ParseServerVersion accepts either a wire name ("Exchange2010_SP1",
// case-insensitive) or a build number reported by a server ("14.1",
// "v15.0.1"). A build number resolves to the newest schema version whose
// build line is not newer than it.
//
// Unknown names and build numbers older than every known version return a
// *errors.ParseError.
func ParseServerVersion(s string) (ServerVersion, error) {
	trimmed := strings.TrimSpace(s)
	for i := range versions {
		if strings.EqualFold(versions[i].name, trimmed) {
			return ServerVersion(i), nil
		}
	}

	build, err := bsemver.ParseTolerant(trimmed)
	if err != nil {
		return Exchange2007SP1, &errors.ParseError{Type: "ServerVersion", Value: s}
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].semver.LTE(build) {
			return ServerVersion(i), nil
		}
	}
	return Exchange2007SP1, &errors.ParseError{Type: "ServerVersion", Value: s}
}

// Valid reports whether v is one of the defined constants.
func (v ServerVersion) Valid() bool {
	return v >= Exchange2007SP1 && v <= Latest
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal
// to, or newer than other.
func (v ServerVersion) Compare(other ServerVersion) int {
	return v.Semver().Compare(other.Semver())
}

// AtLeast reports whether v is min or newer.
func (v ServerVersion) AtLeast(min ServerVersion) bool {
	return v.Compare(min) >= 0
}

// Require returns a *errors.ServiceVersionError naming element when v is
// older than min.
func (v ServerVersion) Require(min ServerVersion, element string) error {
	if v.AtLeast(min) {
		return nil
	}
	return &errors.ServiceVersionError{Element: element, Required: min.String(), Requested: v.String()}
}

// TypeName returns "ServerVersion".
func (v ServerVersion) TypeName() string {
	return "ServerVersion"
}

// Redacted returns the same representation as String; versions carry no
// sensitive data.
func (v ServerVersion) Redacted() string {
	return v.String()
}

// IsZero reports whether v is the oldest supported version. The zero value
// is valid.
func (v ServerVersion) IsZero() bool {
	return v == Exchange2007SP1
}

// Equal reports whether v and other are the same version.
func (v ServerVersion) Equal(other ServerVersion) bool {
	return v == other
}

// Validate returns a *errors.MarshalError for values outside the known set.
func (v ServerVersion) Validate() error {
	if !v.Valid() {
		return &errors.MarshalError{Type: "ServerVersion", Value: int(v)}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler using the wire name.
func (v ServerVersion) MarshalText() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseServerVersion.
func (v *ServerVersion) UnmarshalText(text []byte) error {
	parsed, err := ParseServerVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler using the wire name.
func (v ServerVersion) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler. Only string forms are
// accepted.
func (v *ServerVersion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ServerVersion", Data: data, Reason: err.Error(), Err: err}
	}
	return v.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler using the wire name.
func (v ServerVersion) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler via ParseServerVersion.
func (v *ServerVersion) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ServerVersion", Data: []byte(node.Value), Reason: err.Error(), Err: err}
	}
	return v.UnmarshalText([]byte(s))
}
