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

// RuleActions lists what a rule does to a matching message.
type RuleActions struct {
	property.Base

	assignCategories    *property.StringList
	delete              property.Optional[bool]
	markAsRead          property.Optional[bool]
	moveToFolder        property.FolderId
	stopProcessingRules property.Optional[bool]
}

// NewRuleActions returns an empty action set.
func NewRuleActions() *RuleActions {
	a := &RuleActions{Base: property.NewBase(wire.NamespaceTypes)}
	a.assignCategories = property.NewStringList(wire.NamespaceTypes)
	a.assignCategories.SetOwner(a)
	return a
}

// AssignCategories returns the categories stamped on matching messages.
func (a *RuleActions) AssignCategories() *property.StringList { return a.assignCategories }

func (a *RuleActions) Delete() bool { return a.delete.Value() }
func (a *RuleActions) SetDelete(v bool) { property.Assign(a, &a.delete, v) }
func (a *RuleActions) MarkAsRead() bool { return a.markAsRead.Value() }
func (a *RuleActions) SetMarkAsRead(v bool) { property.Assign(a, &a.markAsRead, v) }
func (a *RuleActions) StopProcessingRules() bool { return a.stopProcessingRules.Value() }
func (a *RuleActions) SetStopProcessingRules(v bool) {
	property.Assign(a, &a.stopProcessingRules, v)
}

// MoveToFolder returns the destination folder and whether one is set.
func (a *RuleActions) MoveToFolder() (property.FolderId, bool) {
	return a.moveToFolder, !a.moveToFolder.IsZero()
}

// SetMoveToFolder moves matching messages to id. A new change key for the
// same folder is a change; a zero id removes the move action.
func (a *RuleActions) SetMoveToFolder(id property.FolderId) {
	if a.moveToFolder.Identical(id.ServiceId) {
		return
	}
	a.moveToFolder = id
	a.MarkChanged()
}

// ClearMoveToFolder removes the move action.
func (a *RuleActions) ClearMoveToFolder() { a.SetMoveToFolder(property.FolderId{}) }

// IsEmpty reports whether no action is set.
func (a *RuleActions) IsEmpty() bool {
	return a.assignCategories.Len() == 0 &&
		!a.delete.IsSet() &&
		!a.markAsRead.IsSet() &&
		a.moveToFolder.IsZero() &&
		!a.stopProcessingRules.IsSet()
}

func (a *RuleActions) MarkClean() {
	a.assignCategories.MarkClean()
	a.Base.MarkClean()
}

func (a *RuleActions) TryReadElement(r *wire.Reader) (bool, error) {
	switch r.LocalName() {
	case "AssignCategories":
		fresh := property.NewStringList(wire.NamespaceTypes)
		if err := property.ReadElement(r, fresh); err != nil {
			return true, err
		}
		a.assignCategories.SetOwner(nil)
		a.assignCategories = fresh
		fresh.SetOwner(a)
		return true, nil
	case "Delete":
		return true, readBool(r, &a.delete)
	case "MarkAsRead":
		return true, readBool(r, &a.markAsRead)
	case "StopProcessingRules":
		return true, readBool(r, &a.stopProcessingRules)
	case "MoveToFolder":
		target := &folderTarget{Base: property.NewBase(wire.NamespaceTypes)}
		if err := property.ReadElement(r, target); err != nil {
			return true, err
		}
		if target.id.IsZero() {
			return true, r.Errorf("MoveToFolder", "missing FolderId")
		}
		a.moveToFolder = target.id
		return true, nil
	}
	return false, nil
}

func (a *RuleActions) WriteElements(w *wire.Writer) error {
	ns := wire.NamespaceTypes
	if a.assignCategories.Len() > 0 {
		if err := property.WriteElement(w, ns, "AssignCategories", a.assignCategories); err != nil {
			return err
		}
	}
	if err := property.WriteOptional(w, ns, "Delete", a.delete); err != nil {
		return err
	}
	if err := property.WriteOptional(w, ns, "MarkAsRead", a.markAsRead); err != nil {
		return err
	}
	if id, ok := a.MoveToFolder(); ok {
		if err := w.WriteStartElement(ns, "MoveToFolder"); err != nil {
			return err
		}
		if err := property.WriteServiceId(w, ns, id.XMLElementName(), id.ServiceId); err != nil {
			return err
		}
		if err := w.WriteEndElement(); err != nil {
			return err
		}
	}
	return property.WriteOptional(w, ns, "StopProcessingRules", a.stopProcessingRules)
}

// folderTarget reads the folder reference wrapped by MoveToFolder.
type folderTarget struct {
	property.Base
	id property.FolderId
}

func (f *folderTarget) TryReadElement(r *wire.Reader) (bool, error) {
	if r.LocalName() != "FolderId" {
		return false, nil
	}
	id, err := property.ReadServiceId(r)
	if err != nil {
		return true, err
	}
	f.id = property.FolderId{ServiceId: id}
	return true, nil
}
