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
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"dirpx.dev/dxews/dxcore/model/version"
	"go.uber.org/multierr"
)

var (
	errNoOpenElement     = stderrors.New("wire: no open element")
	errAttrAfterContent  = stderrors.New("wire: attribute written after element content")
	errUnclosedElements  = stderrors.New("wire: unclosed elements")
	errNamespaceNotKnown = stderrors.New("wire: unknown namespace")
)

// Writer emits elements with the conventional prefixes of their namespaces.
// The first element written declares the Messages and Types prefixes (and
// its own, if different); every later element reuses them.
//
// The first error encountered is sticky: later calls become no-ops and
// return it, and Close reports it. A Writer is not safe for concurrent use.
type Writer struct {
	enc     *xml.Encoder
	logger  *slog.Logger
	version version.ServerVersion

	pending  *xml.StartElement
	open     []xml.Name
	declared bool
	err      error
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	o := buildOptions(opts)
	enc := xml.NewEncoder(w)
	if o.indent {
		enc.Indent("", "  ")
	}
	return &Writer{enc: enc, logger: o.logger, version: o.version}
}

// ServerVersion returns the server schema version the writer targets.
func (w *Writer) ServerVersion() version.ServerVersion {
	return w.version
}

// Logger returns the logger diagnostics are sent to.
func (w *Writer) Logger() *slog.Logger {
	return w.logger
}

// RequireVersion fails with a *errors.ServiceVersionError when the target
// server version is older than min. The failure is not sticky; callers
// return it before writing anything for element.
func (w *Writer) RequireVersion(min version.ServerVersion, element string) error {
	return w.version.Require(min, element)
}

// WriteStartElement opens an element named local in ns. Attributes may be
// added with WriteAttributeValue until content or a child is written.
func (w *Writer) WriteStartElement(ns Namespace, local string) error {
	if w.err != nil {
		return w.err
	}
	if !ns.Valid() {
		return w.fail(fmt.Errorf("%w: %d", errNamespaceNotKnown, int(ns)))
	}
	if err := w.flushPending(); err != nil {
		return err
	}

	start := xml.StartElement{Name: xml.Name{Local: qualify(ns, local)}}
	if !w.declared {
		start.Attr = declarations(ns)
		w.declared = true
	}
	w.pending = &start
	return nil
}

// WriteAttributeValue adds an attribute to the element opened last.
func (w *Writer) WriteAttributeValue(local, value string) error {
	if w.err != nil {
		return w.err
	}
	if w.pending == nil {
		return w.fail(errAttrAfterContent)
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
	return nil
}

// WriteValue writes text content. The value is formatted with FormatValue.
func (w *Writer) WriteValue(value any) error {
	if w.err != nil {
		return w.err
	}
	s, err := FormatValue(value)
	if err != nil {
		return w.fail(err)
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	if len(w.open) == 0 {
		return w.fail(errNoOpenElement)
	}
	return w.encode(xml.CharData(s))
}

// WriteElementValue writes a complete element holding a single scalar.
func (w *Writer) WriteElementValue(ns Namespace, local string, value any) error {
	if err := w.WriteStartElement(ns, local); err != nil {
		return err
	}
	if err := w.WriteValue(value); err != nil {
		return err
	}
	return w.WriteEndElement()
}

// WriteBase64ElementValue writes a complete element holding data encoded as
// xs:base64Binary.
func (w *Writer) WriteBase64ElementValue(ns Namespace, local string, data []byte) error {
	return w.WriteElementValue(ns, local, data)
}

// WriteEndElement closes the element opened last.
func (w *Writer) WriteEndElement() error {
	if w.err != nil {
		return w.err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	if len(w.open) == 0 {
		return w.fail(errNoOpenElement)
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	return w.encode(xml.EndElement{Name: name})
}

// Depth returns the number of open elements.
func (w *Writer) Depth() int {
	n := len(w.open)
	if w.pending != nil {
		n++
	}
	return n
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	if err := w.enc.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Close flushes the writer and reports every error seen: the sticky error,
// elements left open, and failures of the encoder itself.
func (w *Writer) Close() error {
	var errs error
	if w.err == nil {
		errs = multierr.Append(errs, w.flushPending())
	} else {
		errs = multierr.Append(errs, w.err)
	}
	if len(w.open) > 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d", errUnclosedElements, len(w.open)))
	}
	errs = multierr.Append(errs, w.enc.Flush())
	return errs
}

func (w *Writer) flushPending() error {
	if w.pending == nil {
		return nil
	}
	start := *w.pending
	w.pending = nil
	w.open = append(w.open, start.Name)
	return w.encode(start)
}

func (w *Writer) encode(tok xml.Token) error {
	if err := w.enc.EncodeToken(tok); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return w.err
}

func qualify(ns Namespace, local string) string {
	if p := ns.Prefix(); p != "" {
		return p + ":" + local
	}
	return local
}

func declarations(root Namespace) []xml.Attr {
	decl := []Namespace{NamespaceMessages, NamespaceTypes}
	if root != NamespaceNotSpecified && root != NamespaceMessages && root != NamespaceTypes {
		decl = append(decl, root)
	}
	attrs := make([]xml.Attr, 0, len(decl))
	for _, ns := range decl {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + ns.Prefix()}, Value: ns.URI()})
	}
	return attrs
}
