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

package mail

import (
	"time"

	"dirpx.dev/dxews/dxcore/errors"
	"dirpx.dev/dxews/dxcore/model/version"
	"dirpx.dev/dxews/dxcore/property"
	"dirpx.dev/dxews/dxcore/wire"
)

// Flag is the follow-up flag of an item. Servers older than Exchange2013
// do not know the element, so writing it for them fails with a
// *errors.ServiceVersionError.
type Flag struct {
	property.Base
	status       property.Optional[FlagStatus]
	startDate    property.Optional[time.Time]
	dueDate      property.Optional[time.Time]
	completeDate property.Optional[time.Time]
}

// NewFlag returns an empty flag.
func NewFlag() *Flag {
	return &Flag{Base: property.NewBase(wire.NamespaceTypes)}
}

func (f *Flag) Status() FlagStatus { return f.status.Value() }
func (f *Flag) SetStatus(s FlagStatus) { property.Assign(f, &f.status, s) }
func (f *Flag) StartDate() (time.Time, bool) { return f.startDate.Get() }
func (f *Flag) SetStartDate(t time.Time) { property.AssignTime(f, &f.startDate, t) }
func (f *Flag) DueDate() (time.Time, bool) { return f.dueDate.Get() }
func (f *Flag) SetDueDate(t time.Time) { property.AssignTime(f, &f.dueDate, t) }

// CompleteDate returns the completion date and whether it is set.
func (f *Flag) CompleteDate() (time.Time, bool) { return f.completeDate.Get() }

// SetCompleteDate sets the completion date.
func (f *Flag) SetCompleteDate(t time.Time) { property.AssignTime(f, &f.completeDate, t) }

func (f *Flag) TypeName() string { return "Flag" }

// MinimumVersion reports that the element exists from Exchange2013 on.
func (f *Flag) MinimumVersion() version.ServerVersion { return version.Exchange2013 }

// Validate checks the status is a defined constant.
func (f *Flag) Validate() error {
	if s, ok := f.status.Get(); ok && !s.Valid() {
		return &errors.ValidationError{Type: "Flag", Field: "FlagStatus", Reason: "unknown status", Value: int(s)}
	}
	return nil
}

func (f *Flag) TryReadElement(r *wire.Reader) (bool, error) {
	switch r.LocalName() {
	case "FlagStatus":
		line, column := r.Position()
		s, err := r.ReadElementValue()
		if err != nil {
			return true, err
		}
		status, err := ParseFlagStatus(s)
		if err != nil {
			return true, &errors.UnmarshalError{
				Type: "FlagStatus", Data: []byte(s), Reason: "unknown status",
				Line: line, Column: column, Err: err,
			}
		}
		f.status.Load(status)
	case "StartDate":
		return true, loadTime(r, &f.startDate)
	case "DueDate":
		return true, loadTime(r, &f.dueDate)
	case "CompleteDate":
		return true, loadTime(r, &f.completeDate)
	default:
		return false, nil
	}
	return true, nil
}

func loadTime(r *wire.Reader, o *property.Optional[time.Time]) error {
	t, err := r.ReadElementValueAsDateTime()
	if err != nil {
		return err
	}
	o.Load(t)
	return nil
}

func (f *Flag) WriteElements(w *wire.Writer) error {
	if err := property.WriteOptional(w, wire.NamespaceTypes, "FlagStatus", f.status); err != nil {
		return err
	}
	if err := property.WriteOptional(w, wire.NamespaceTypes, "StartDate", f.startDate); err != nil {
		return err
	}
	if err := property.WriteOptional(w, wire.NamespaceTypes, "DueDate", f.dueDate); err != nil {
		return err
	}
	return property.WriteOptional(w, wire.NamespaceTypes, "CompleteDate", f.completeDate)
}
