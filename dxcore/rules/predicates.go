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

package rules

import (
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// RulePredicates is a set of tests on a message. It is used both for a
// rule's conditions and for its exceptions; a message matches when every
// set predicate matches.
type RulePredicates struct {
	property.Base

	categories             *property.StringList
	containsBodyStrings    *property.StringList
	containsSenderStrings  *property.StringList
	containsSubjectStrings *property.StringList
	hasAttachments         property.Optional[bool]
}

// NewRulePredicates returns an empty predicate set.
func NewRulePredicates() *RulePredicates {
	p := &RulePredicates{Base: property.NewBase(wire.NamespaceTypes)}
	for _, l := range p.lists() {
		*l.list = property.NewStringList(wire.NamespaceTypes)
		(*l.list).SetOwner(p)
	}
	return p
}

type namedList struct {
	name string
	list **property.StringList
}

// lists returns the string-list predicates in schema order.
func (p *RulePredicates) lists() []namedList {
	return []namedList{
		{"Categories", &p.categories},
		{"ContainsBodyStrings", &p.containsBodyStrings},
		{"ContainsSenderStrings", &p.containsSenderStrings},
		{"ContainsSubjectStrings", &p.containsSubjectStrings},
	}
}

func (p *RulePredicates) Categories() *property.StringList { return p.categories }
func (p *RulePredicates) ContainsBodyStrings() *property.StringList { return p.containsBodyStrings }
func (p *RulePredicates) ContainsSenderStrings() *property.StringList { return p.containsSenderStrings }
func (p *RulePredicates) ContainsSubjectStrings() *property.StringList { return p.containsSubjectStrings }

// HasAttachments returns the attachment test and whether it is set.
func (p *RulePredicates) HasAttachments() (bool, bool) { return p.hasAttachments.Get() }

// SetHasAttachments sets the attachment test.
func (p *RulePredicates) SetHasAttachments(v bool) { property.Assign(p, &p.hasAttachments, v) }

// ClearHasAttachments removes the attachment test.
func (p *RulePredicates) ClearHasAttachments() { property.Unset(p, &p.hasAttachments) }

// IsEmpty reports whether no predicate is set.
func (p *RulePredicates) IsEmpty() bool {
	for _, l := range p.lists() {
		if (*l.list).Len() > 0 {
			return false
		}
	}
	return !p.hasAttachments.IsSet()
}

func (p *RulePredicates) MarkClean() {
	for _, l := range p.lists() {
		(*l.list).MarkClean()
	}
	p.Base.MarkClean()
}

func (p *RulePredicates) TryReadElement(r *wire.Reader) (bool, error) {
	if r.LocalName() == "HasAttachments" {
		return true, readBool(r, &p.hasAttachments)
	}
	for _, l := range p.lists() {
		if l.name != r.LocalName() {
			continue
		}
		fresh := property.NewStringList(wire.NamespaceTypes)
		if err := property.ReadElement(r, fresh); err != nil {
			return true, err
		}
		(*l.list).SetOwner(nil)
		*l.list = fresh
		fresh.SetOwner(p)
		return true, nil
	}
	return false, nil
}

func (p *RulePredicates) WriteElements(w *wire.Writer) error {
	for _, l := range p.lists() {
		if (*l.list).Len() == 0 {
			continue
		}
		if err := property.WriteElement(w, wire.NamespaceTypes, l.name, *l.list); err != nil {
			return err
		}
	}
	return property.WriteOptional(w, wire.NamespaceTypes, "HasAttachments", p.hasAttachments)
}
