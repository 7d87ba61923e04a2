// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// PatronLoan is one row of a patron's lending history report. It joins
// a loan with the title of its work, so the presentation layer can
// render the history without an extra lookup per row. The core returns
// these plain rows and never formats them itself.
type PatronLoan struct {
	Loan
	WorkTitle string `json:"work_title"`
}

// Status returns the lifecycle state of the history row as a label
// suitable for reports.
func (pl *PatronLoan) Status() string {
	if pl.Returned() {
		return "returned"
	}
	return "open"
}
