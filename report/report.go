// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report implements the front end's Diagnostic Engine (spec.md
// §4.2): two ordered, span-annotated diagnostic lists bucketed by level,
// rendered with a source snippet and a caret.
package report

import "fmt"

// Level is the severity of a diagnostic.
type Level int8

const (
	Error Level = iota
	Warning
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("report.Level(%d)", int(l))
	}
}

// Diagnostic is a single span-annotated message.
type Diagnostic struct {
	Level   Level
	Message string
	Span    Span
}

// Report accumulates diagnostics produced while parsing a compilation. It
// holds two ordered lists -- Error and Warning -- matching spec.md §4.2
// exactly; diagnostics are never reordered or deduplicated, so their
// storage order is their lexical production order (spec.md §5).
type Report struct {
	errors   []Diagnostic
	warnings []Diagnostic

	// ShouldReportWarns gates whether ReportWarning actually records
	// anything, matching spec.md §7's "suppressed unless
	// should_report_warns" rule for the unnecessary-semicolon warning.
	ShouldReportWarns bool
}

// NewReport returns an empty Report with warnings enabled.
func NewReport() *Report {
	return &Report{ShouldReportWarns: true}
}

// ReportError appends an error-level diagnostic.
func (r *Report) ReportError(span Span, message string) {
	r.errors = append(r.errors, Diagnostic{Level: Error, Message: message, Span: span})
}

// ReportErrorf is like [Report.ReportError], but formats message.
func (r *Report) ReportErrorf(span Span, format string, args ...any) {
	r.ReportError(span, fmt.Sprintf(format, args...))
}

// ReportWarning appends a warning-level diagnostic, unless
// ShouldReportWarns is false.
func (r *Report) ReportWarning(span Span, message string) {
	if !r.ShouldReportWarns {
		return
	}
	r.warnings = append(r.warnings, Diagnostic{Level: Warning, Message: message, Span: span})
}

// ReportWarningf is like [Report.ReportWarning], but formats message.
func (r *Report) ReportWarningf(span Span, format string, args ...any) {
	r.ReportWarning(span, fmt.Sprintf(format, args...))
}

// Errors returns the accumulated error diagnostics, in production order.
func (r *Report) Errors() []Diagnostic { return r.errors }

// Warnings returns the accumulated warning diagnostics, in production order.
func (r *Report) Warnings() []Diagnostic { return r.warnings }

// LevelCount returns how many diagnostics of the given level have been
// recorded (spec.md §4.2's level_count).
func (r *Report) LevelCount(level Level) int {
	switch level {
	case Error:
		return len(r.errors)
	case Warning:
		return len(r.warnings)
	default:
		return 0
	}
}

// HasErrors reports whether any error-level diagnostic has been recorded.
func (r *Report) HasErrors() bool { return len(r.errors) > 0 }

// Merge appends other's diagnostics to r, preserving other's internal
// Error-then-Warning order. Used by the compilation driver to funnel
// diagnostics from independently-compiled roots (each with its own Report)
// into one aggregate Report for rendering (spec.md §4.8's directory mode).
func (r *Report) Merge(other *Report) {
	r.errors = append(r.errors, other.errors...)
	r.warnings = append(r.warnings, other.warnings...)
}
