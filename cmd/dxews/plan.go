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

package main

import (
	"fmt"
	"os"

	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/rules"
	"gopkg.in/yaml.v3"
)

// plan is a YAML description of one UpdateInboxRules call:
//
//	mailbox: ana@example.com
//	operations:
//	  - op: CreateRuleOperation
//	    rule:
//	      displayName: Newsletters
//	      priority: 1
//	      conditions:
//	        containsSubjectStrings: ["[news]"]
//	      actions:
//	        moveToFolder: AQMkADAw
//	        stopProcessingRules: true
//	  - op: DeleteRuleOperation
//	    ruleId: "42"
type plan struct {
	Mailbox               string          `yaml:"mailbox,omitempty"`
	RemoveOutlookRuleBlob bool            `yaml:"removeOutlookRuleBlob,omitempty"`
	Operations            []planOperation `yaml:"operations,omitempty"`
}

type planOperation struct {
	Op     string    `yaml:"op"`
	Rule   *planRule `yaml:"rule,omitempty"`
	RuleID string    `yaml:"ruleId,omitempty"`
}

type planRule struct {
	ID          string          `yaml:"id,omitempty"`
	DisplayName string          `yaml:"displayName,omitempty"`
	Priority    *int            `yaml:"priority,omitempty"`
	Enabled     *bool           `yaml:"enabled,omitempty"`
	Conditions  *planPredicates `yaml:"conditions,omitempty"`
	Exceptions  *planPredicates `yaml:"exceptions,omitempty"`
	Actions     *planActions    `yaml:"actions,omitempty"`
}

type planPredicates struct {
	Categories             []string `yaml:"categories,omitempty"`
	ContainsBodyStrings    []string `yaml:"containsBodyStrings,omitempty"`
	ContainsSenderStrings  []string `yaml:"containsSenderStrings,omitempty"`
	ContainsSubjectStrings []string `yaml:"containsSubjectStrings,omitempty"`
	HasAttachments         *bool    `yaml:"hasAttachments,omitempty"`
}

type planActions struct {
	AssignCategories    []string           `yaml:"assignCategories,omitempty"`
	Delete              *bool              `yaml:"delete,omitempty"`
	MarkAsRead          *bool              `yaml:"markAsRead,omitempty"`
	MoveToFolder        *property.FolderId `yaml:"moveToFolder,omitempty"`
	StopProcessingRules *bool              `yaml:"stopProcessingRules,omitempty"`
}

func loadPlan(path string) (*plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

// request turns the plan into a request. Operations are built but not
// validated here.
func (p *plan) request() (rules.UpdateInboxRulesRequest, error) {
	req := rules.UpdateInboxRulesRequest{
		MailboxSmtpAddress:    p.Mailbox,
		RemoveOutlookRuleBlob: p.RemoveOutlookRuleBlob,
	}
	for i, po := range p.Operations {
		op, err := po.build()
		if err != nil {
			return req, fmt.Errorf("operations[%d]: %w", i, err)
		}
		req.Operations = append(req.Operations, op)
	}
	return req, nil
}

func (po planOperation) build() (rules.RuleOperation, error) {
	op, err := rules.NewRuleOperation(po.Op)
	if err != nil {
		return nil, err
	}
	switch op := op.(type) {
	case *rules.DeleteRuleOperation:
		if po.RuleID != "" {
			op.SetRuleID(po.RuleID)
		}
	case interface{ SetRule(*rules.Rule) }:
		if po.Rule != nil {
			op.SetRule(po.Rule.build())
		}
	}
	return op, nil
}

func (pr *planRule) build() *rules.Rule {
	r := rules.NewRule()
	if pr.ID != "" {
		r.SetID(pr.ID)
	}
	if pr.DisplayName != "" {
		r.SetDisplayName(pr.DisplayName)
	}
	if pr.Priority != nil {
		r.SetPriority(*pr.Priority)
	}
	if pr.Enabled != nil {
		r.SetEnabled(*pr.Enabled)
	}
	pr.Conditions.apply(r.Conditions())
	pr.Exceptions.apply(r.Exceptions())
	pr.Actions.apply(r.Actions())
	return r
}

func (pp *planPredicates) apply(p *rules.RulePredicates) {
	if pp == nil {
		return
	}
	p.Categories().Set(pp.Categories...)
	p.ContainsBodyStrings().Set(pp.ContainsBodyStrings...)
	p.ContainsSenderStrings().Set(pp.ContainsSenderStrings...)
	p.ContainsSubjectStrings().Set(pp.ContainsSubjectStrings...)
	if pp.HasAttachments != nil {
		p.SetHasAttachments(*pp.HasAttachments)
	}
}

func (pa *planActions) apply(a *rules.RuleActions) {
	if pa == nil {
		return
	}
	a.AssignCategories().Set(pa.AssignCategories...)
	if pa.Delete != nil {
		a.SetDelete(*pa.Delete)
	}
	if pa.MarkAsRead != nil {
		a.SetMarkAsRead(*pa.MarkAsRead)
	}
	if pa.MoveToFolder != nil {
		a.SetMoveToFolder(*pa.MoveToFolder)
	}
	if pa.StopProcessingRules != nil {
		a.SetStopProcessingRules(*pa.StopProcessingRules)
	}
}

// planFromRules describes rules as a plan of SetRuleOperations, so that a
// mailbox's rules can be edited and sent back.
func planFromRules(mailbox string, rs []*rules.Rule) *plan {
	p := &plan{Mailbox: mailbox}
	for _, r := range rs {
		p.Operations = append(p.Operations, planOperation{
			Op:   rules.SetRuleOperationTag,
			Rule: ruleToPlan(r),
		})
	}
	return p
}

func ruleToPlan(r *rules.Rule) *planRule {
	pr := &planRule{
		ID:          r.ID(),
		DisplayName: r.DisplayName(),
		Conditions:  predicatesToPlan(r.Conditions()),
		Exceptions:  predicatesToPlan(r.Exceptions()),
	}
	if p, ok := r.Priority(); ok {
		pr.Priority = &p
	}
	if !r.IsEnabled() {
		pr.Enabled = ptr(false)
	}

	a := r.Actions()
	if !a.IsEmpty() {
		pa := &planActions{AssignCategories: a.AssignCategories().Values()}
		if a.Delete() {
			pa.Delete = ptr(true)
		}
		if a.MarkAsRead() {
			pa.MarkAsRead = ptr(true)
		}
		if id, ok := a.MoveToFolder(); ok {
			pa.MoveToFolder = &id
		}
		if a.StopProcessingRules() {
			pa.StopProcessingRules = ptr(true)
		}
		pr.Actions = pa
	}
	return pr
}

func predicatesToPlan(p *rules.RulePredicates) *planPredicates {
	if p.IsEmpty() {
		return nil
	}
	pp := &planPredicates{
		Categories:             p.Categories().Values(),
		ContainsBodyStrings:    p.ContainsBodyStrings().Values(),
		ContainsSenderStrings:  p.ContainsSenderStrings().Values(),
		ContainsSubjectStrings: p.ContainsSubjectStrings().Values(),
	}
	if v, ok := p.HasAttachments(); ok {
		pp.HasAttachments = &v
	}
	return pp
}

func ptr[T any](v T) *T { return &v }
