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
	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model"
	"dirpx.dev/dxews/dxcore/model/version"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// UpdateInboxRulesRequest is the body of an UpdateInboxRules call.
type UpdateInboxRulesRequest struct {
	// MailboxSmtpAddress selects a delegated mailbox. Empty means the
	// caller's own mailbox.
	MailboxSmtpAddress string

	// RemoveOutlookRuleBlob asks the server to drop rules only Outlook
	// understands.
	RemoveOutlookRuleBlob bool

	Operations []RuleOperation
}

// WriteUpdateInboxRules writes the UpdateInboxRules body for req.
//
// Every operation is validated first and all failures are returned
// together; nothing is written unless the whole batch is valid. The
// request needs Exchange2010_SP1 or later.
func WriteUpdateInboxRules(w *wire.Writer, req UpdateInboxRulesRequest) error {
	if len(req.Operations) == 0 {
		return &errors.ArgumentError{Param: "operations", Reason: "must not be empty"}
	}
	if err := model.ValidateAll(req.Operations); err != nil {
		return err
	}
	if err := w.RequireVersion(version.Exchange2010SP1, "UpdateInboxRules"); err != nil {
		return err
	}

	m := wire.NamespaceMessages
	if err := w.WriteStartElement(m, "UpdateInboxRules"); err != nil {
		return err
	}
	if req.MailboxSmtpAddress != "" {
		if err := w.WriteElementValue(m, "MailboxSmtpAddress", req.MailboxSmtpAddress); err != nil {
			return err
		}
	}
	if err := w.WriteElementValue(m, "RemoveOutlookRuleBlob", req.RemoveOutlookRuleBlob); err != nil {
		return err
	}
	if err := w.WriteStartElement(m, "Operations"); err != nil {
		return err
	}
	for _, op := range req.Operations {
		if err := property.WriteElement(w, op.Namespace(), op.XMLElementName(), op); err != nil {
			return err
		}
	}
	if err := w.WriteEndElement(); err != nil {
		return err
	}
	return w.WriteEndElement()
}

// WriteGetInboxRules writes the GetInboxRules body. An empty mailbox means
// the caller's own mailbox.
func WriteGetInboxRules(w *wire.Writer, mailboxSmtpAddress string) error {
	if err := w.RequireVersion(version.Exchange2010SP1, "GetInboxRules"); err != nil {
		return err
	}
	m := wire.NamespaceMessages
	if err := w.WriteStartElement(m, "GetInboxRules"); err != nil {
		return err
	}
	if mailboxSmtpAddress != "" {
		if err := w.WriteElementValue(m, "MailboxSmtpAddress", mailboxSmtpAddress); err != nil {
			return err
		}
	}
	return w.WriteEndElement()
}

// InboxRules is a parsed GetInboxRules response.
type InboxRules struct {
	property.Base

	responseClass         string
	responseCode          property.Optional[string]
	messageText           property.Optional[string]
	outlookRuleBlobExists property.Optional[bool]
	rules                 *RuleCollection
}

func newInboxRules() *InboxRules {
	ir := &InboxRules{Base: property.NewBase(wire.NamespaceMessages), rules: NewRuleCollection()}
	ir.rules.SetOwner(ir)
	return ir
}

// ReadInboxRules reads a GetInboxRulesResponse element. The reader must be
// positioned before it.
func ReadInboxRules(r *wire.Reader) (*InboxRules, error) {
	ir := newInboxRules()
	if err := property.ReadRoot(r, wire.NamespaceMessages, "GetInboxRulesResponse", ir); err != nil {
		return nil, err
	}
	return ir, nil
}

// ResponseClass returns "Success", "Warning" or "Error".
func (ir *InboxRules) ResponseClass() string { return ir.responseClass }

// ResponseCode returns the server's response code, such as "NoError".
func (ir *InboxRules) ResponseCode() string { return ir.responseCode.Value() }

// MessageText returns the server's explanation of a failure.
func (ir *InboxRules) MessageText() string { return ir.messageText.Value() }

// Succeeded reports whether the server answered with a Success response.
func (ir *InboxRules) Succeeded() bool { return ir.responseClass == "Success" }

// OutlookRuleBlobExists reports whether the mailbox holds rules only
// Outlook can edit.
func (ir *InboxRules) OutlookRuleBlobExists() bool { return ir.outlookRuleBlobExists.Value() }

// Rules returns the rules in the mailbox.
func (ir *InboxRules) Rules() *RuleCollection { return ir.rules }

func (ir *InboxRules) MarkClean() {
	ir.rules.MarkClean()
	ir.Base.MarkClean()
}

func (ir *InboxRules) ReadAttributes(r *wire.Reader) error {
	ir.responseClass, _ = r.Attr("ResponseClass")
	return nil
}

func (ir *InboxRules) TryReadElement(r *wire.Reader) (bool, error) {
	switch r.LocalName() {
	case "ResponseCode":
		return true, readString(r, &ir.responseCode)
	case "MessageText":
		return true, readString(r, &ir.messageText)
	case "OutlookRuleBlobExists":
		return true, readBool(r, &ir.outlookRuleBlobExists)
	case "InboxRules":
		rules := NewRuleCollection()
		if err := property.ReadElement(r, rules); err != nil {
			return true, err
		}
		ir.rules.SetOwner(nil)
		ir.rules = rules
		rules.SetOwner(ir)
		return true, nil
	}
	return false, nil
}

func (ir *InboxRules) WriteAttributes(w *wire.Writer) error {
	if ir.responseClass == "" {
		return nil
	}
	return w.WriteAttributeValue("ResponseClass", ir.responseClass)
}

func (ir *InboxRules) WriteElements(w *wire.Writer) error {
	m := wire.NamespaceMessages
	if err := property.WriteOptional(w, m, "MessageText", ir.messageText); err != nil {
		return err
	}
	if err := property.WriteOptional(w, m, "ResponseCode", ir.responseCode); err != nil {
		return err
	}
	if err := property.WriteOptional(w, m, "OutlookRuleBlobExists", ir.outlookRuleBlobExists); err != nil {
		return err
	}
	return property.WriteElement(w, m, "InboxRules", ir.rules)
}
