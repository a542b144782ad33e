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
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/dxews/dxcore/errors"
	"github.com/jacoelho/xsd/pkg/xmlstream"
)

// NodeKind classifies the node a Reader is positioned on.
type NodeKind int

const (
	// NodeNone is the state before the first Read and after the end of the
	// document.
	NodeNone NodeKind = iota
	NodeStartElement
	NodeEndElement
	NodeText
)

type attr struct {
	namespace string
	local     string
	value     string
}

// Reader is a forward-only, namespace-aware element reader.
//
// It wraps an xmlstream.Reader and copies out the parts of each event the
// property tree needs, so values returned by its methods stay valid after
// the reader advances. Comments, processing instructions and directives are
// skipped transparently.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	stream *xmlstream.Reader
	logger *slog.Logger
	strict bool

	kind      NodeKind
	namespace string
	local     string
	attrs     []attr
	text      string
	line      int
	column    int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	o := buildOptions(opts)
	stream, err := xmlstream.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{stream: stream, logger: o.logger, strict: o.strict}, nil
}

// Logger returns the logger diagnostics are sent to.
func (r *Reader) Logger() *slog.Logger {
	return r.logger
}

// Strict reports whether unrecognised child elements are errors.
func (r *Reader) Strict() bool {
	return r.strict
}

// Read advances to the next start element, end element or text node. It
// returns io.EOF at the end of the document.
func (r *Reader) Read() error {
	for {
		ev, err := r.stream.Next()
		if err != nil {
			r.kind = NodeNone
			if stderrors.Is(err, io.EOF) {
				return io.EOF
			}
			return &errors.UnmarshalError{Type: "XML", Reason: err.Error(), Err: err}
		}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			r.kind = NodeStartElement
			r.namespace = ev.Name.Namespace
			r.local = ev.Name.Local
			r.attrs = r.attrs[:0]
			for _, a := range ev.Attrs {
				r.attrs = append(r.attrs, attr{
					namespace: a.Name.Namespace,
					local:     a.Name.Local,
					value:     string(a.Value),
				})
			}
			r.text = ""
		case xmlstream.EventEndElement:
			r.kind = NodeEndElement
			r.namespace = ev.Name.Namespace
			r.local = ev.Name.Local
			r.attrs = r.attrs[:0]
			r.text = ""
		case xmlstream.EventCharData:
			r.kind = NodeText
			r.text = string(ev.Text)
		default:
			continue
		}
		r.line, r.column = ev.Line, ev.Column
		return nil
	}
}

// Kind returns the kind of the current node.
func (r *Reader) Kind() NodeKind {
	return r.kind
}

// LocalName returns the local name of the current element.
func (r *Reader) LocalName() string {
	return r.local
}

// NamespaceURI returns the namespace URI of the current element.
func (r *Reader) NamespaceURI() string {
	return r.namespace
}

// Namespace returns the namespace of the current element.
func (r *Reader) Namespace() Namespace {
	return NamespaceFromURI(r.namespace)
}

// Text returns the content of the current text node.
func (r *Reader) Text() string {
	return r.text
}

// Position returns the line and column of the current node.
func (r *Reader) Position() (line, column int) {
	return r.line, r.column
}

// IsStartElement reports whether the reader is positioned on a start element
// named local in ns. NamespaceNotSpecified matches any namespace.
func (r *Reader) IsStartElement(ns Namespace, local string) bool {
	return r.kind == NodeStartElement && r.matches(ns, local)
}

// IsEndElement reports whether the reader is positioned on an end element
// named local in ns. NamespaceNotSpecified matches any namespace.
func (r *Reader) IsEndElement(ns Namespace, local string) bool {
	return r.kind == NodeEndElement && r.matches(ns, local)
}

func (r *Reader) matches(ns Namespace, local string) bool {
	if r.local != local {
		return false
	}
	return ns == NamespaceNotSpecified || r.namespace == ns.URI()
}

// Attr returns the value of the unqualified attribute local on the current
// start element.
func (r *Reader) Attr(local string) (string, bool) {
	if r.kind != NodeStartElement {
		return "", false
	}
	for _, a := range r.attrs {
		if a.local == local && a.namespace == "" {
			return a.value, true
		}
	}
	return "", false
}

// ReadStartElement advances past text to the next start element and checks
// that it is named local in ns.
func (r *Reader) ReadStartElement(ns Namespace, local string) error {
	for {
		if err := r.Read(); err != nil {
			if stderrors.Is(err, io.EOF) {
				return r.unexpectedEOF(local)
			}
			return err
		}
		switch r.kind {
		case NodeText:
			continue
		case NodeStartElement:
			if r.matches(ns, local) {
				return nil
			}
		}
		return r.Errorf(local, "expected start element %s, found %s", local, r.describe())
	}
}

// ReadElementValue reads the text content of the current start element and
// leaves the reader on its end element. An empty element yields "". A
// nested element is a deserialization error.
func (r *Reader) ReadElementValue() (string, error) {
	if r.kind != NodeStartElement {
		return "", r.Errorf("XML", "expected start element, found %s", r.describe())
	}
	name := r.local
	var sb strings.Builder
	for {
		if err := r.Read(); err != nil {
			if stderrors.Is(err, io.EOF) {
				return "", r.unexpectedEOF(name)
			}
			return "", err
		}
		switch r.kind {
		case NodeText:
			sb.WriteString(r.text)
		case NodeEndElement:
			return sb.String(), nil
		case NodeStartElement:
			return "", r.Errorf(name, "unexpected element %s in scalar value", r.local)
		}
	}
}

// ReadElementValueAsBool reads the current element as an xs:boolean.
func (r *Reader) ReadElementValueAsBool() (bool, error) {
	name, line, column := r.local, r.line, r.column
	s, err := r.ReadElementValue()
	if err != nil {
		return false, err
	}
	v, err := ParseBool(s)
	if err != nil {
		return false, scalarError(name, s, "invalid boolean", line, column, err)
	}
	return v, nil
}

// ReadElementValueAsInt reads the current element as an integer.
func (r *Reader) ReadElementValueAsInt() (int, error) {
	name, line, column := r.local, r.line, r.column
	s, err := r.ReadElementValue()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, scalarError(name, s, "invalid integer", line, column, err)
	}
	return v, nil
}

// ReadElementValueAsDateTime reads the current element as an xs:dateTime,
// returned in UTC.
func (r *Reader) ReadElementValueAsDateTime() (time.Time, error) {
	name, line, column := r.local, r.line, r.column
	s, err := r.ReadElementValue()
	if err != nil {
		return time.Time{}, err
	}
	v, err := ParseDateTime(s)
	if err != nil {
		return time.Time{}, scalarError(name, s, "invalid date-time", line, column, err)
	}
	return v, nil
}

// ReadBase64ElementValue reads the current element as xs:base64Binary.
func (r *Reader) ReadBase64ElementValue() ([]byte, error) {
	name, line, column := r.local, r.line, r.column
	s, err := r.ReadElementValue()
	if err != nil {
		return nil, err
	}
	v, err := ParseBase64(s)
	if err != nil {
		return nil, scalarError(name, s, "invalid base64", line, column, err)
	}
	return v, nil
}

// SkipCurrentElement skips the current start element with all of its
// content. The reader is left positioned on the skipped element's end.
func (r *Reader) SkipCurrentElement() error {
	if r.kind != NodeStartElement {
		return r.Errorf("XML", "expected start element, found %s", r.describe())
	}
	if err := r.stream.SkipSubtree(); err != nil {
		return &errors.UnmarshalError{Type: r.local, Reason: err.Error(), Line: r.line, Column: r.column, Err: err}
	}
	r.kind = NodeEndElement
	r.attrs = r.attrs[:0]
	return nil
}

// Errorf builds a *errors.UnmarshalError for typ located at the current
// node.
func (r *Reader) Errorf(typ, format string, args ...any) error {
	return &errors.UnmarshalError{
		Type:   typ,
		Reason: fmt.Sprintf(format, args...),
		Line:   r.line,
		Column: r.column,
	}
}

func (r *Reader) unexpectedEOF(name string) error {
	return &errors.UnmarshalError{
		Type:   name,
		Reason: "unexpected end of document",
		Line:   r.line,
		Column: r.column,
		Err:    io.ErrUnexpectedEOF,
	}
}

func (r *Reader) describe() string {
	switch r.kind {
	case NodeStartElement:
		return "start element " + r.local
	case NodeEndElement:
		return "end element " + r.local
	case NodeText:
		return "text"
	default:
		return "nothing"
	}
}

func scalarError(name, data, reason string, line, column int, err error) error {
	return &errors.UnmarshalError{
		Type:   name,
		Data:   []byte(data),
		Reason: reason,
		Line:   line,
		Column: column,
		Err:    err,
	}
}
