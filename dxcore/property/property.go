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

// Package property implements the mutable property tree that dxews maps
// onto the XML wire format.
//
// Every node of the tree is a Property. A node knows which child elements
// it recognises (TryReadElement) and how to emit the fields that are set
// (WriteElements); the generic loops ReadElement and WriteElement drive
// arbitrary nesting without knowing concrete types.
//
// # Change tracking
//
// A node is dirty once one of its own fields changes to a new value or one
// of the nodes it owns becomes dirty. Setters call MarkChanged, which sets
// the flag and notifies the owner, stopping at the root or at the first
// node that is already dirty. Values hydrated from the wire are stored with
// Load and do not mark anything. A node only becomes clean again through
// MarkClean, which callers invoke on the root after a successful write.
//
// The owner link is a notification handle, never an ownership edge:
// ownership flows strictly from parent to child, and containers hand each
// child a small handle that records which entry changed.
//
// # Partial representations
//
// Scalar fields are held in Optional (or Bytes for binary data). A field
// that was never read and never assigned is unset and is omitted on write,
// which is how partial update payloads are produced.
//
// Trees are not safe for concurrent use. A tree belongs to one
// request/response cycle at a time.
package property

import (
	stderrors "errors"
	"io"
	"strings"

	"dirpx.dev/dxews/dxcore/model/version"
	"dirpx.dev/dxews/dxcore/wire"
)

// Owner is notified when a node it owns becomes dirty.
type Owner interface {
	MarkChanged()
}

// Property is the contract shared by every node of a property tree.
type Property interface {
	Owner

	// Namespace returns the namespace the node's elements belong to.
	Namespace() wire.Namespace

	// IsDirty reports whether the node or anything it owns changed since the
	// last MarkClean.
	IsDirty() bool

	// MarkClean clears the dirty state of the node and everything it owns.
	MarkClean()

	// SetOwner installs the handle notified when the node becomes dirty. A
	// nil owner detaches the node.
	SetOwner(owner Owner)

	// Owner returns the installed owner handle, or nil for a detached node.
	Owner() Owner

	// TryReadElement is called with the reader positioned on a child start
	// element. When the node recognises the element it consumes it, leaving
	// the reader on the child's end element, stores the value and returns
	// true. Otherwise it returns false without consuming input or mutating
	// state.
	TryReadElement(r *wire.Reader) (bool, error)

	// WriteElements writes one child element per set field in schema order.
	WriteElements(w *wire.Writer) error
}

// AttributeReader is implemented by nodes that carry XML attributes. It is
// called by ReadElement while the reader is on the node's start element.
type AttributeReader interface {
	ReadAttributes(r *wire.Reader) error
}

// AttributeWriter is implemented by nodes that carry XML attributes. It is
// called by WriteElement right after the node's start element.
type AttributeWriter interface {
	WriteAttributes(w *wire.Writer) error
}

// TextReader is implemented by nodes with text content. It receives the
// concatenated text of the element once its end element has been reached.
type TextReader interface {
	ReadText(r *wire.Reader, text string) error
}

// TextWriter is implemented by nodes with text content. It is called
// before WriteElements.
type TextWriter interface {
	WriteText(w *wire.Writer) error
}

// VersionedProperty is implemented by nodes that servers only understand
// from some schema version on. WriteElement checks the writer's target
// version before it opens the node's element.
type VersionedProperty interface {
	MinimumVersion() version.ServerVersion
}

// Base carries the state every node shares: its namespace, its dirty flag
// and its owner handle. Concrete nodes embed Base and override
// TryReadElement, WriteElements and, when they own other nodes, MarkClean.
type Base struct {
	ns    wire.Namespace
	dirty bool
	owner Owner
}

// NewBase returns a clean Base in ns.
func NewBase(ns wire.Namespace) Base {
	return Base{ns: ns}
}

// Namespace returns the namespace of the node.
func (b *Base) Namespace() wire.Namespace {
	return b.ns
}

// IsDirty reports whether the node changed since the last MarkClean.
func (b *Base) IsDirty() bool {
	return b.dirty
}

// MarkChanged sets the dirty flag and notifies the owner. Propagation stops
// at a node that is already dirty.
func (b *Base) MarkChanged() {
	if b.dirty {
		return
	}
	b.dirty = true
	if b.owner != nil {
		b.owner.MarkChanged()
	}
}

// MarkClean clears the dirty flag of this node only.
func (b *Base) MarkClean() {
	b.dirty = false
}

// SetOwner installs the owner handle.
func (b *Base) SetOwner(owner Owner) {
	b.owner = owner
}

// Owner returns the owner handle, or nil.
func (b *Base) Owner() Owner {
	return b.owner
}

// TryReadElement recognises nothing.
func (b *Base) TryReadElement(*wire.Reader) (bool, error) {
	return false, nil
}

// WriteElements writes nothing.
func (b *Base) WriteElements(*wire.Writer) error {
	return nil
}

// CanAssign reports whether assigning newValue over oldValue is a real
// change. Setters skip the assignment, and the dirty mark, when it is not.
func CanAssign[T comparable](oldValue, newValue T) bool {
	return oldValue != newValue
}

// Clean calls MarkClean on every non-nil node.
func Clean(nodes ...Property) {
	for _, n := range nodes {
		if n != nil {
			n.MarkClean()
		}
	}
}

// ReadElement hydrates p from the element the reader is positioned on and
// leaves the reader on that element's end.
//
// Attributes go to AttributeReader, child start elements to
// p.TryReadElement and text to TextReader. Children p does not recognise
// are skipped and logged at debug level, or rejected with an
// *errors.UnmarshalError when the reader is strict.
func ReadElement(r *wire.Reader, p Property) error {
	if r.Kind() != wire.NodeStartElement {
		return r.Errorf("XML", "expected start element")
	}
	name := r.LocalName()

	if ar, ok := p.(AttributeReader); ok {
		if err := ar.ReadAttributes(r); err != nil {
			return err
		}
	}

	var text strings.Builder
	for {
		if err := r.Read(); err != nil {
			if stderrors.Is(err, io.EOF) {
				return r.Errorf(name, "unexpected end of document")
			}
			return err
		}

		switch r.Kind() {
		case wire.NodeText:
			text.WriteString(r.Text())

		case wire.NodeEndElement:
			if tr, ok := p.(TextReader); ok {
				return tr.ReadText(r, text.String())
			}
			return nil

		case wire.NodeStartElement:
			consumed, err := p.TryReadElement(r)
			if err != nil {
				return err
			}
			if consumed {
				continue
			}
			if r.Strict() {
				return r.Errorf(name, "unexpected element %s", r.LocalName())
			}
			line, column := r.Position()
			r.Logger().Debug("skipping unknown element",
				"parent", name, "element", r.LocalName(), "line", line, "column", column)
			if err := r.SkipCurrentElement(); err != nil {
				return err
			}
		}
	}
}

// ReadRoot advances to the next start element, checks it is named name in
// ns and hydrates p from it.
func ReadRoot(r *wire.Reader, ns wire.Namespace, name string, p Property) error {
	if err := r.ReadStartElement(ns, name); err != nil {
		return err
	}
	return ReadElement(r, p)
}

// WriteElement writes p wrapped in an element named name in ns. A
// VersionedProperty the target server does not know fails with a
// *errors.ServiceVersionError before anything is written.
func WriteElement(w *wire.Writer, ns wire.Namespace, name string, p Property) error {
	if vp, ok := p.(VersionedProperty); ok {
		if err := w.RequireVersion(vp.MinimumVersion(), name); err != nil {
			return err
		}
	}
	if err := w.WriteStartElement(ns, name); err != nil {
		return err
	}
	if aw, ok := p.(AttributeWriter); ok {
		if err := aw.WriteAttributes(w); err != nil {
			return err
		}
	}
	if tw, ok := p.(TextWriter); ok {
		if err := tw.WriteText(w); err != nil {
			return err
		}
	}
	if err := p.WriteElements(w); err != nil {
		return err
	}
	return w.WriteEndElement()
}
