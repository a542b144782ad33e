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

package version

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"dirpx.dev/dxews/dxcore/errors"
	"gopkg.in/yaml.v3"
)

func TestServerVersion_String(t *testing.T) {
	tests := []struct {
		name    string
		version ServerVersion
		want    string
	}{
		{"2007 SP1", Exchange2007SP1, "Exchange2007_SP1"},
		{"2010", Exchange2010, "Exchange2010"},
		{"2010 SP1", Exchange2010SP1, "Exchange2010_SP1"},
		{"2013 SP1", Exchange2013SP1, "Exchange2013_SP1"},
		{"unknown", ServerVersion(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.version.String(); got != tt.want {
				t.Errorf("ServerVersion.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ServerVersion
		wantErr bool
	}{
		{"wire name", "Exchange2010_SP1", Exchange2010SP1, false},
		{"wire name lower case", "exchange2013", Exchange2013, false},
		{"surrounding space", "  Exchange2010 ", Exchange2010, false},
		{"exact build", "14.1.0", Exchange2010SP1, false},
		{"short build", "14.2", Exchange2010SP2, false},
		{"v prefix", "v15.0.1", Exchange2013SP1, false},
		{"build between lines", "14.3.0", Exchange2010SP2, false},
		{"newer than latest", "16.0", Exchange2013SP1, false},
		{"older than oldest", "6.5", Exchange2007SP1, true},
		{"garbage", "latest", Exchange2007SP1, true},
		{"empty", "", Exchange2007SP1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServerVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseServerVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var perr *errors.ParseError
				if !stderrors.As(err, &perr) {
					t.Errorf("ParseServerVersion() error = %T, want *errors.ParseError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseServerVersion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServerVersion_AtLeast(t *testing.T) {
	tests := []struct {
		name string
		v    ServerVersion
		min  ServerVersion
		want bool
	}{
		{"same", Exchange2010SP1, Exchange2010SP1, true},
		{"newer", Exchange2013, Exchange2010SP1, true},
		{"older", Exchange2010, Exchange2010SP1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AtLeast(tt.min); got != tt.want {
				t.Errorf("AtLeast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServerVersion_Require(t *testing.T) {
	if err := Exchange2013.Require(Exchange2010SP1, "InboxRules"); err != nil {
		t.Errorf("Require() error = %v, want nil", err)
	}

	err := Exchange2010.Require(Exchange2013, "Flag")
	var verr *errors.ServiceVersionError
	if !stderrors.As(err, &verr) {
		t.Fatalf("Require() error = %v, want *errors.ServiceVersionError", err)
	}
	if verr.Element != "Flag" || verr.Required != "Exchange2013" || verr.Requested != "Exchange2010" {
		t.Errorf("Require() error = %+v", verr)
	}
}

func TestServerVersion_Validate(t *testing.T) {
	if err := Exchange2010.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := ServerVersion(-1).Validate(); err == nil {
		t.Errorf("Validate() on invalid value: want error")
	}
}

func TestServerVersion_JSON(t *testing.T) {
	data, err := json.Marshal(Exchange2010SP2)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"Exchange2010_SP2"` {
		t.Errorf("json.Marshal() = %s, want \"Exchange2010_SP2\"", data)
	}

	var got ServerVersion
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got != Exchange2010SP2 {
		t.Errorf("json.Unmarshal() = %v, want %v", got, Exchange2010SP2)
	}

	if err := json.Unmarshal([]byte(`3`), &got); err == nil {
		t.Errorf("json.Unmarshal(number): want error")
	}
	if _, err := json.Marshal(ServerVersion(99)); err == nil {
		t.Errorf("json.Marshal(invalid): want error")
	}
}

func TestServerVersion_YAML(t *testing.T) {
	type config struct {
		Version ServerVersion `yaml:"version"`
	}

	var cfg config
	if err := yaml.Unmarshal([]byte("version: \"14.1\"\n"), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if cfg.Version != Exchange2010SP1 {
		t.Errorf("yaml.Unmarshal() = %v, want %v", cfg.Version, Exchange2010SP1)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if string(out) != "version: Exchange2010_SP1\n" {
		t.Errorf("yaml.Marshal() = %q", out)
	}
}
