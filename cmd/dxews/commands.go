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
	"errors"
	"fmt"
	"os"

	"dirpx.dev/dxews/dxcore/model"
	"dirpx.dev/dxews/dxcore/rules"
	"dirpx.dev/dxews/dxcore/wire"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var errNoOperations = errors.New("plan has no operations")

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PLAN...",
		Short: "Check that rule plans are complete",
		Long:  "Load every plan and validate all of its operations. Failures of all files are reported together.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs error
			for _, path := range args {
				n, err := validatePlan(path)
				if err != nil {
					a.logger.Debug("plan rejected", "file", path, "error", err)
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				a.logger.Info("plan is valid", "file", path, "operations", n)
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s (%d operations)\n", path, n)
			}
			return errs
		},
	}
}

func validatePlan(path string) (int, error) {
	p, err := loadPlan(path)
	if err != nil {
		return 0, err
	}
	req, err := p.request()
	if err != nil {
		return 0, err
	}
	if len(req.Operations) == 0 {
		return 0, errNoOperations
	}
	return len(req.Operations), model.ValidateAll(req.Operations)
}

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render PLAN",
		Short: "Write the UpdateInboxRules body for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.wireOptions()
			if err != nil {
				return err
			}
			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			req, err := p.request()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := wire.NewWriter(out, opts...)
			err = rules.WriteUpdateInboxRules(w, req)
			if err = multierr.Append(err, w.Close()); err != nil {
				return err
			}
			a.logger.Debug("rendered plan", "file", args[0], "operations", len(req.Operations),
				"server_version", w.ServerVersion().String())
			_, err = fmt.Fprintln(out)
			return err
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	var mailbox string
	cmd := &cobra.Command{
		Use:   "inspect RESPONSE",
		Short: "Print the rules of a GetInboxRules response as a plan",
		Long: `Read a GetInboxRulesResponse document and print its rules as a plan of
SetRuleOperations that can be edited and passed to render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.wireOptions()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			r, err := wire.NewReader(f, opts...)
			if err != nil {
				return err
			}
			ir, err := rules.ReadInboxRules(r)
			if err != nil {
				return err
			}
			if !ir.Succeeded() {
				return fmt.Errorf("server answered %s %s: %s", ir.ResponseClass(), ir.ResponseCode(), ir.MessageText())
			}
			if ir.OutlookRuleBlobExists() {
				a.logger.Info("mailbox holds rules only Outlook can edit", "file", args[0])
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(planFromRules(mailbox, ir.Rules().Items())); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&mailbox, "mailbox", "", "mailbox address to put in the printed plan")
	return cmd
}
