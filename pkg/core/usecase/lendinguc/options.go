// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lendinguc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the lending use case.
type Option func(uc *UseCase) error

// WithLoanPeriod option configures a lending UseCase instance in order
// to use the given number of days as the default loan period whenever
// a lending operation does not ask for a specific period. This option
// may be passed to the New() function.
func WithLoanPeriod(days int) Option {
	return func(uc *UseCase) error {
		if days <= 0 {
			return fmt.Errorf("loan period (%d) is not positive", days)
		}
		if uc.loanPeriodDays != 0 {
			return errors.New("loan period is already configured")
		}
		uc.loanPeriodDays = days
		return nil
	}
}

// WithDailyFine option configures a lending UseCase instance in order
// to charge the given amount of currency units per overdue day when
// assessing late return fees. This option may be passed to the New()
// function.
func WithDailyFine(amount float64) Option {
	return func(uc *UseCase) error {
		if amount <= 0 {
			return fmt.Errorf("daily fine (%g) is not positive", amount)
		}
		if uc.finePerDay != 0 {
			return errors.New("daily fine is already configured")
		}
		uc.finePerDay = amount
		return nil
	}
}
