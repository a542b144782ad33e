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

package rules_test

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model/version"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/rules"
	"dirpx.dev/dxews/dxcore/wire"
	"github.com/google/go-cmp/cmp"
)

func TestWriteUpdateInboxRules(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	err := rules.WriteUpdateInboxRules(w, rules.UpdateInboxRulesRequest{
		MailboxSmtpAddress: "ana@example.com",
		Operations:         []rules.RuleOperation{rules.NewDeleteRuleOperation("42")},
	})
	if err != nil {
		t.Fatalf("WriteUpdateInboxRules() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	want := `<m:UpdateInboxRules` + decls + `>` +
		`<m:MailboxSmtpAddress>ana@example.com</m:MailboxSmtpAddress>` +
		`<m:RemoveOutlookRuleBlob>false</m:RemoveOutlookRuleBlob>` +
		`<m:Operations><t:DeleteRuleOperation><t:RuleId>42</t:RuleId></t:DeleteRuleOperation></m:Operations>` +
		`</m:UpdateInboxRules>`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("write mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteUpdateInboxRules_ValidatesWholeBatchFirst(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	err := rules.WriteUpdateInboxRules(w, rules.UpdateInboxRulesRequest{
		Operations: []rules.RuleOperation{
			rules.NewCreateRuleOperation(nil),
			rules.NewDeleteRuleOperation("7"),
			rules.NewDeleteRuleOperation(""),
		},
	})
	if err == nil {
		t.Fatal("WriteUpdateInboxRules() succeeded with invalid operations")
	}
	for _, part := range []string{"model[0] (CreateRuleOperation)", "model[2] (DeleteRuleOperation)"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error = %q, want it to mention %q", err, part)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("invalid batch produced output: %s", buf.String())
	}
}

func TestWriteUpdateInboxRules_Arguments(t *testing.T) {
	tests := []struct {
		name    string
		opts    []wire.Option
		ops     []rules.RuleOperation
		wantErr any
	}{
		{"empty batch", nil, nil, new(*errors.ArgumentError)},
		{
			"server too old",
			[]wire.Option{wire.WithServerVersion(version.Exchange2010)},
			[]rules.RuleOperation{rules.NewDeleteRuleOperation("1")},
			new(*errors.ServiceVersionError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wire.NewWriter(&bytes.Buffer{}, tt.opts...)
			err := rules.WriteUpdateInboxRules(w, rules.UpdateInboxRulesRequest{Operations: tt.ops})
			if !stderrors.As(err, tt.wantErr) {
				t.Errorf("WriteUpdateInboxRules() error = %v, want %T", err, tt.wantErr)
			}
		})
	}
}

func TestWriteGetInboxRules(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := rules.WriteGetInboxRules(w, ""); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if want := `<m:GetInboxRules` + decls + `></m:GetInboxRules>`; buf.String() != want {
		t.Errorf("write = %s, want %s", buf.String(), want)
	}
}

const inboxRulesResponse = `<m:GetInboxRulesResponse ResponseClass="Success"` + decls + `>
  <m:ResponseCode>NoError</m:ResponseCode>
  <m:OutlookRuleBlobExists>true</m:OutlookRuleBlobExists>
  <m:InboxRules>
    <t:Rule>
      <t:RuleId>AQAAAAAAAAA=</t:RuleId>
      <t:DisplayName>Newsletters</t:DisplayName>
      <t:Priority>1</t:Priority>
      <t:IsEnabled>false</t:IsEnabled>
      <t:Conditions>
        <t:ContainsSubjectStrings><t:String>[news]</t:String><t:String>digest</t:String></t:ContainsSubjectStrings>
        <t:HasAttachments>true</t:HasAttachments>
      </t:Conditions>
      <t:Actions>
        <t:AssignCategories><t:String>Reading</t:String></t:AssignCategories>
        <t:MoveToFolder><t:FolderId Id="AQMk=" ChangeKey="AQAAAA=="/></t:MoveToFolder>
        <t:StopProcessingRules>true</t:StopProcessingRules>
      </t:Actions>
    </t:Rule>
    <t:Rule>
      <t:RuleId>AQAAAAAAAAE=</t:RuleId>
      <t:DisplayName>Legacy</t:DisplayName>
      <t:Priority>2</t:Priority>
      <t:IsNotSupported>true</t:IsNotSupported>
    </t:Rule>
  </m:InboxRules>
</m:GetInboxRulesResponse>`

func TestReadInboxRules(t *testing.T) {
	ir, err := rules.ReadInboxRules(reader(t, inboxRulesResponse))
	if err != nil {
		t.Fatalf("ReadInboxRules() error = %v", err)
	}
	if !ir.Succeeded() || ir.ResponseCode() != "NoError" || !ir.OutlookRuleBlobExists() {
		t.Errorf("response = %q %q %v", ir.ResponseClass(), ir.ResponseCode(), ir.OutlookRuleBlobExists())
	}
	if ir.Rules().Len() != 2 {
		t.Fatalf("Rules().Len() = %d, want 2", ir.Rules().Len())
	}

	rule, ok := ir.Rules().FindByName("Newsletters")
	if !ok {
		t.Fatal("FindByName(Newsletters) not found")
	}
	if rule.IsEnabled() {
		t.Errorf("IsEnabled() = true, want false")
	}
	if diff := cmp.Diff([]string{"[news]", "digest"}, rule.Conditions().ContainsSubjectStrings().Values()); diff != "" {
		t.Errorf("ContainsSubjectStrings mismatch (-want +got):\n%s", diff)
	}
	if v, ok := rule.Conditions().HasAttachments(); !ok || !v {
		t.Errorf("HasAttachments() = %v, %v", v, ok)
	}
	folder, ok := rule.Actions().MoveToFolder()
	if !ok || !folder.Equal(property.NewFolderId("AQMk=", "")) || folder.ChangeKey() != "AQAAAA==" {
		t.Errorf("MoveToFolder() = %+v, %v", folder, ok)
	}
	if !rule.Actions().AssignCategories().Contains("Reading") {
		t.Errorf("AssignCategories() = %v", rule.Actions().AssignCategories().Values())
	}

	legacy, ok := ir.Rules().FindByID("AQAAAAAAAAE=")
	if !ok || !legacy.IsNotSupported() || legacy.IsInError() {
		t.Errorf("FindByID() = %+v, %v", legacy, ok)
	}
	if ir.IsDirty() || rule.IsDirty() {
		t.Errorf("freshly read response is dirty")
	}
}

func TestReadInboxRules_UpdateRoundTrip(t *testing.T) {
	ir, err := rules.ReadInboxRules(reader(t, inboxRulesResponse))
	if err != nil {
		t.Fatal(err)
	}
	rule, _ := ir.Rules().FindByName("Newsletters")
	rule.SetEnabled(true)
	if !ir.IsDirty() {
		t.Fatalf("editing a read rule did not dirty the response")
	}

	op := rules.NewSetRuleOperation(nil)
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	if err := property.WriteElement(w, wire.NamespaceTypes, "Rule", rule); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := reader(t, buf.String())
	if err := r.ReadStartElement(wire.NamespaceTypes, "Rule"); err != nil {
		t.Fatal(err)
	}
	if ok, err := op.TryReadElement(r); !ok || err != nil {
		t.Fatalf("TryReadElement() = %v, %v", ok, err)
	}
	if got := op.Rule(); got.ID() != rule.ID() || !got.IsEnabled() || got.Actions().IsEmpty() {
		t.Errorf("re-read rule = %+v", got)
	}
}

func TestReadInboxRules_MoveToFolderWithoutFolder(t *testing.T) {
	doc := `<m:GetInboxRulesResponse` + decls + `><m:InboxRules><t:Rule>` +
		`<t:Actions><t:MoveToFolder></t:MoveToFolder></t:Actions>` +
		`</t:Rule></m:InboxRules></m:GetInboxRulesResponse>`

	_, err := rules.ReadInboxRules(reader(t, doc))
	var uerr *errors.UnmarshalError
	if !stderrors.As(err, &uerr) || uerr.Type != "MoveToFolder" {
		t.Errorf("ReadInboxRules() error = %v, want *errors.UnmarshalError for MoveToFolder", err)
	}
}
