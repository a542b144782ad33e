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
	"slices"
	"strings"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// Operation element names. Each one is the wire discriminant of a variant.
const (
	CreateRuleOperationTag = "CreateRuleOperation"
	SetRuleOperationTag    = "SetRuleOperation"
	DeleteRuleOperationTag = "DeleteRuleOperation"
)

// RuleOperation is one change in an UpdateInboxRules batch. The set of
// variants is closed: CreateRuleOperation, SetRuleOperation and
// DeleteRuleOperation.
type RuleOperation interface {
	property.Property
	model.Checkable

	// XMLElementName returns the element the operation is written as.
	XMLElementName() string

	isRuleOperation()
}

var (
	_ RuleOperation = (*CreateRuleOperation)(nil)
	_ RuleOperation = (*SetRuleOperation)(nil)
	_ RuleOperation = (*DeleteRuleOperation)(nil)
)

// ruleOperation is shared by the variants that carry a whole rule.
type ruleOperation struct {
	property.Base
	tag  string
	rule *Rule
}

func newRuleOperation(tag string) ruleOperation {
	return ruleOperation{Base: property.NewBase(wire.NamespaceTypes), tag: tag}
}

func (o *ruleOperation) isRuleOperation() {}

func (o *ruleOperation) XMLElementName() string { return o.tag }
func (o *ruleOperation) TypeName() string { return o.tag }

// Rule returns the rule carried by the operation, or nil.
func (o *ruleOperation) Rule() *Rule { return o.rule }

// SetRule replaces the carried rule. A nil rule leaves the operation
// invalid until another rule is set.
func (o *ruleOperation) SetRule(rule *Rule) {
	if o.rule == rule {
		return
	}
	o.attach(rule)
	o.MarkChanged()
}

func (o *ruleOperation) attach(rule *Rule) {
	if o.rule != nil {
		o.rule.SetOwner(nil)
	}
	o.rule = rule
	if rule != nil {
		rule.SetOwner(o)
	}
}

// Validate fails with a required-field error naming Rule when no rule is
// set, and otherwise returns the rule's own validation result.
func (o *ruleOperation) Validate() error {
	if o.rule == nil {
		return &errors.ValidationError{Type: o.tag, Field: ruleElement, Reason: errors.ReasonRequired}
	}
	return o.rule.Validate()
}

func (o *ruleOperation) MarkClean() {
	if o.rule != nil {
		o.rule.MarkClean()
	}
	o.Base.MarkClean()
}

func (o *ruleOperation) WriteElements(w *wire.Writer) error {
	if o.rule == nil {
		return nil
	}
	return property.WriteElement(w, wire.NamespaceTypes, ruleElement, o.rule)
}

// CreateRuleOperation adds a new rule to the mailbox.
type CreateRuleOperation struct {
	ruleOperation
}

// NewCreateRuleOperation returns an operation creating rule, which may be
// nil and set later.
func NewCreateRuleOperation(rule *Rule) *CreateRuleOperation {
	op := &CreateRuleOperation{newRuleOperation(CreateRuleOperationTag)}
	op.attach(rule)
	return op
}

// SetRuleOperation replaces an existing rule. The rule must carry the id of
// the rule it replaces.
type SetRuleOperation struct {
	ruleOperation
}

// NewSetRuleOperation returns an operation replacing the rule with rule's
// id.
func NewSetRuleOperation(rule *Rule) *SetRuleOperation {
	op := &SetRuleOperation{newRuleOperation(SetRuleOperationTag)}
	op.attach(rule)
	return op
}

// TryReadElement reads the Rule child. The rule is read off-tree and
// attached once complete.
func (o *SetRuleOperation) TryReadElement(r *wire.Reader) (bool, error) {
	if r.LocalName() != ruleElement {
		return false, nil
	}
	rule := NewRule()
	if err := property.ReadElement(r, rule); err != nil {
		return true, err
	}
	o.attach(rule)
	return true, nil
}

// DeleteRuleOperation removes a rule by id.
type DeleteRuleOperation struct {
	property.Base
	ruleID property.Optional[string]
}

// NewDeleteRuleOperation returns an operation deleting the rule with id
// ruleID. An empty ruleID leaves the operation invalid until one is set.
func NewDeleteRuleOperation(ruleID string) *DeleteRuleOperation {
	op := &DeleteRuleOperation{Base: property.NewBase(wire.NamespaceTypes)}
	if ruleID != "" {
		op.ruleID.Load(ruleID)
	}
	return op
}

func (o *DeleteRuleOperation) isRuleOperation() {}

func (o *DeleteRuleOperation) XMLElementName() string { return DeleteRuleOperationTag }
func (o *DeleteRuleOperation) TypeName() string { return DeleteRuleOperationTag }

// RuleID returns the id of the rule to delete.
func (o *DeleteRuleOperation) RuleID() string { return o.ruleID.Value() }

// SetRuleID sets the id of the rule to delete.
func (o *DeleteRuleOperation) SetRuleID(id string) { property.Assign(o, &o.ruleID, id) }

// Validate fails with a required-field error naming RuleId when the id is
// unset or blank.
func (o *DeleteRuleOperation) Validate() error {
	if strings.TrimSpace(o.ruleID.Value()) == "" {
		return &errors.ValidationError{Type: DeleteRuleOperationTag, Field: "RuleId", Reason: errors.ReasonRequired}
	}
	return nil
}

func (o *DeleteRuleOperation) WriteElements(w *wire.Writer) error {
	return property.WriteOptional(w, wire.NamespaceTypes, "RuleId", o.ruleID)
}

// operationFactories is the closed registration table used to build
// variants from their tags.
var operationFactories = map[string]func() RuleOperation{
	CreateRuleOperationTag: func() RuleOperation { return NewCreateRuleOperation(nil) },
	SetRuleOperationTag:    func() RuleOperation { return NewSetRuleOperation(nil) },
	DeleteRuleOperationTag: func() RuleOperation { return NewDeleteRuleOperation("") },
}

// NewRuleOperation returns an empty operation for tag. Unknown tags are an
// *errors.ArgumentError.
func NewRuleOperation(tag string) (RuleOperation, error) {
	newOp, ok := operationFactories[tag]
	if !ok {
		return nil, &errors.ArgumentError{Param: "tag", Reason: "unknown rule operation " + tag}
	}
	return newOp(), nil
}

// RuleOperationTags returns the known operation tags in sorted order.
func RuleOperationTags() []string {
	tags := make([]string, 0, len(operationFactories))
	for tag := range operationFactories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// RuleOperationCollection is an ordered batch of operations. Children are
// built through the registration table by element name.
type RuleOperationCollection struct {
	*property.Collection[RuleOperation]
}

// NewRuleOperationCollection returns an empty batch.
func NewRuleOperationCollection() *RuleOperationCollection {
	return &RuleOperationCollection{
		Collection: property.NewCollection(wire.NamespaceMessages,
			func(name string) (RuleOperation, bool) {
				if name != SetRuleOperationTag {
					return nil, false
				}
				return NewSetRuleOperation(nil), true
			},
			func(op RuleOperation) string { return op.XMLElementName() },
		),
	}
}

// TryReadElement reads one operation. SetRuleOperation hydrates itself;
// the write-only variants are read into an operationBody and built from it.
func (c *RuleOperationCollection) TryReadElement(r *wire.Reader) (bool, error) {
	tag := r.LocalName()
	if tag != CreateRuleOperationTag && tag != DeleteRuleOperationTag {
		return c.Collection.TryReadElement(r)
	}
	body := &operationBody{Base: property.NewBase(wire.NamespaceTypes), tag: tag}
	if err := property.ReadElement(r, body); err != nil {
		return true, err
	}
	c.Load(body.operation())
	return true, nil
}

// Validate validates every operation and reports all failures together.
func (c *RuleOperationCollection) Validate() error {
	return model.ValidateAll(c.Items())
}

// operationBody holds the children of a CreateRuleOperation or
// DeleteRuleOperation element while it is read.
type operationBody struct {
	property.Base
	tag    string
	rule   *Rule
	ruleID property.Optional[string]
}

func (b *operationBody) TryReadElement(r *wire.Reader) (bool, error) {
	switch {
	case b.tag == CreateRuleOperationTag && r.LocalName() == ruleElement:
		rule := NewRule()
		if err := property.ReadElement(r, rule); err != nil {
			return true, err
		}
		b.rule = rule
	case b.tag == DeleteRuleOperationTag && r.LocalName() == "RuleId":
		id, err := r.ReadElementValue()
		if err != nil {
			return true, err
		}
		b.ruleID.Load(id)
	default:
		return false, nil
	}
	return true, nil
}

func (b *operationBody) operation() RuleOperation {
	if b.tag == DeleteRuleOperationTag {
		return NewDeleteRuleOperation(b.ruleID.Value())
	}
	return NewCreateRuleOperation(b.rule)
}
