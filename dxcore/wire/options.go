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
	"io"
	"log/slog"

	"dirpx.dev/dxews/dxcore/model/version"
)

// Option configures a Reader or a Writer. Options that do not apply to the
// value being built are ignored.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	strict  bool
	version version.ServerVersion
	indent  bool
}

func buildOptions(opts []Option) options {
	o := options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		version: version.Latest,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger routes diagnostics (skipped elements, version downgrades) to
// logger. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrict makes a Reader reject child elements that no property
// recognises instead of skipping them.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithServerVersion sets the server schema version a Writer targets.
// Properties introduced after v fail to write. The default is
// version.Latest.
func WithServerVersion(v version.ServerVersion) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithIndent makes a Writer indent nested elements by two spaces.
func WithIndent(indent bool) Option {
	return func(o *options) {
		o.indent = indent
	}
}
