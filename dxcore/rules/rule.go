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

// Package rules models mailbox Inbox rules and the operations that create,
// update and delete them.
//
// A Rule is a tree of property nodes: its scalar fields, a set of
// conditions, a set of exceptions and the actions to take. Rules are sent
// to the server wrapped in operations:
//
//   - CreateRuleOperation adds a new rule;
//   - SetRuleOperation replaces an existing rule, matched by its RuleId;
//   - DeleteRuleOperation removes a rule by id.
//
// A batch of operations is written with WriteUpdateInboxRules, which
// validates every operation before producing any output. The rules stored
// in a mailbox are read back with ReadInboxRules.
//
// Example:
//
//	rule := rules.NewRule()
//	rule.SetDisplayName("Newsletters")
//	rule.SetPriority(1)
//	rule.Conditions().ContainsSubjectStrings().Add("[newsletter]")
//	rule.Actions().SetMoveToFolder(property.NewFolderId(folderID, ""))
//
//	err := rules.WriteUpdateInboxRules(w, rules.UpdateInboxRulesRequest{
//	    Operations: []rules.RuleOperation{rules.NewCreateRuleOperation(rule)},
//	})
package rules

import (
	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

const ruleElement = "Rule"

// Rule is a single Inbox rule.
type Rule struct {
	property.Base

	id             property.Optional[string]
	displayName    property.Optional[string]
	priority       property.Optional[int]
	isEnabled      property.Optional[bool]
	isNotSupported property.Optional[bool]
	isInError      property.Optional[bool]

	conditions *RulePredicates
	exceptions *RulePredicates
	actions    *RuleActions
}

// NewRule returns an empty rule with empty conditions, exceptions and
// actions.
func NewRule() *Rule {
	r := &Rule{Base: property.NewBase(wire.NamespaceTypes)}
	r.conditions = NewRulePredicates()
	r.conditions.SetOwner(r)
	r.exceptions = NewRulePredicates()
	r.exceptions.SetOwner(r)
	r.actions = NewRuleActions()
	r.actions.SetOwner(r)
	return r
}

// ID returns the server-assigned rule id, or "" for a rule not yet
// created.
func (r *Rule) ID() string { return r.id.Value() }

// SetID sets the rule id. Only rules being updated carry one.
func (r *Rule) SetID(id string) { property.Assign(r, &r.id, id) }

// DisplayName returns the name shown to the user.
func (r *Rule) DisplayName() string { return r.displayName.Value() }

// SetDisplayName sets the name shown to the user.
func (r *Rule) SetDisplayName(s string) { property.Assign(r, &r.displayName, s) }

// Priority returns the evaluation order of the rule, lowest first, and
// whether it is set.
func (r *Rule) Priority() (int, bool) { return r.priority.Get() }

// SetPriority sets the evaluation order of the rule.
func (r *Rule) SetPriority(p int) { property.Assign(r, &r.priority, p) }

// IsEnabled reports whether the rule is active. Rules are enabled unless
// the server says otherwise.
func (r *Rule) IsEnabled() bool {
	v, ok := r.isEnabled.Get()
	return !ok || v
}

// SetEnabled turns the rule on or off.
func (r *Rule) SetEnabled(v bool) { property.Assign(r, &r.isEnabled, v) }

// IsNotSupported reports whether the rule uses features this client cannot
// edit. The flag is set by the server only.
func (r *Rule) IsNotSupported() bool { return r.isNotSupported.Value() }

// IsInError reports whether the server failed to run the rule. The flag is
// set by the server only.
func (r *Rule) IsInError() bool { return r.isInError.Value() }

// Conditions returns the predicates a message must match.
func (r *Rule) Conditions() *RulePredicates { return r.conditions }

// Exceptions returns the predicates that exempt a message.
func (r *Rule) Exceptions() *RulePredicates { return r.exceptions }

// Actions returns what the rule does to matching messages.
func (r *Rule) Actions() *RuleActions { return r.actions }

// TypeName returns "Rule".
func (r *Rule) TypeName() string { return ruleElement }

// Validate requires a display name. Value ranges, such as the priority,
// are checked by the server.
func (r *Rule) Validate() error {
	if r.displayName.Value() == "" {
		return &errors.ValidationError{Type: ruleElement, Field: "DisplayName", Reason: errors.ReasonRequired}
	}
	return nil
}

func (r *Rule) MarkClean() {
	property.Clean(r.conditions, r.exceptions, r.actions)
	r.Base.MarkClean()
}

func (r *Rule) TryReadElement(rd *wire.Reader) (bool, error) {
	var err error
	switch rd.LocalName() {
	case "RuleId":
		err = readString(rd, &r.id)
	case "DisplayName":
		err = readString(rd, &r.displayName)
	case "Priority":
		err = readInt(rd, &r.priority)
	case "IsEnabled":
		err = readBool(rd, &r.isEnabled)
	case "IsNotSupported":
		err = readBool(rd, &r.isNotSupported)
	case "IsInError":
		err = readBool(rd, &r.isInError)
	case "Conditions":
		err = r.readPredicates(rd, &r.conditions)
	case "Exceptions":
		err = r.readPredicates(rd, &r.exceptions)
	case "Actions":
		actions := NewRuleActions()
		if err = property.ReadElement(rd, actions); err == nil {
			r.actions.SetOwner(nil)
			r.actions = actions
			actions.SetOwner(r)
		}
	default:
		return false, nil
	}
	return true, err
}

// readPredicates hydrates a fresh predicate set and swaps it in only once
// it was read completely.
func (r *Rule) readPredicates(rd *wire.Reader, slot **RulePredicates) error {
	p := NewRulePredicates()
	if err := property.ReadElement(rd, p); err != nil {
		return err
	}
	(*slot).SetOwner(nil)
	*slot = p
	p.SetOwner(r)
	return nil
}

func (r *Rule) WriteElements(w *wire.Writer) error {
	ns := wire.NamespaceTypes
	if err := property.WriteOptional(w, ns, "RuleId", r.id); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "DisplayName", r.displayName); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "Priority", r.priority); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "IsEnabled", r.isEnabled); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "IsNotSupported", r.isNotSupported); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "IsInError", r.isInError); err != nil {
		return err
	}
	if !r.conditions.IsEmpty() {
		if err := property.WriteElement(w, ns, "Conditions", r.conditions); err != nil {
			return err
		}
	}
	if !r.exceptions.IsEmpty() {
		if err := property.WriteElement(w, ns, "Exceptions", r.exceptions); err != nil {
			return err
		}
	}
	if !r.actions.IsEmpty() {
		return property.WriteElement(w, ns, "Actions", r.actions)
	}
	return nil
}

func readString(r *wire.Reader, o *property.Optional[string]) error {
	s, err := r.ReadElementValue()
	if err != nil {
		return err
	}
	o.Load(s)
	return nil
}

func readInt(r *wire.Reader, o *property.Optional[int]) error {
	v, err := r.ReadElementValueAsInt()
	if err != nil {
		return err
	}
	o.Load(v)
	return nil
}

func readBool(r *wire.Reader, o *property.Optional[bool]) error {
	v, err := r.ReadElementValueAsBool()
	if err != nil {
		return err
	}
	o.Load(v)
	return nil
}

// RuleCollection is the ordered list of rules in a mailbox.
type RuleCollection struct {
	*property.Collection[*Rule]
}

// NewRuleCollection returns an empty collection.
func NewRuleCollection() *RuleCollection {
	return &RuleCollection{
		Collection: property.NewCollection(wire.NamespaceTypes,
			func(name string) (*Rule, bool) {
				if name != ruleElement {
					return nil, false
				}
				return NewRule(), true
			},
			func(*Rule) string { return ruleElement },
		),
	}
}

// FindByID returns the rule with the given id.
func (c *RuleCollection) FindByID(id string) (*Rule, bool) {
	return c.Find(func(r *Rule) bool { return r.ID() == id })
}

// FindByName returns the first rule with the given display name.
func (c *RuleCollection) FindByName(name string) (*Rule, bool) {
	return c.Find(func(r *Rule) bool { return r.DisplayName() == name })
}
