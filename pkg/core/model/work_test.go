// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/liblend/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkRejectsNegativeQuantity(t *testing.T) {
	w, err := model.NewWork(
		"Dom Casmurro", "Machado de Assis", 1899, "Romance", -1,
	)
	assert.Error(t, err, "a negative copies count is meaningless")
	assert.Nil(t, w)
}

func TestNewWorkAssignsFreshIdentifiers(t *testing.T) {
	w1, err := model.NewWork(
		"Dom Casmurro", "Machado de Assis", 1899, "Romance", 2,
	)
	require.NoError(t, err)
	w2, err := model.NewWork(
		"Dom Casmurro", "Machado de Assis", 1899, "Romance", 2,
	)
	require.NoError(t, err)
	assert.NotEqual(
		t, w1.ID, w2.ID,
		"equal attributes must not lead to identifier reuse",
	)
	assert.Equal(t, "Dom Casmurro (1899)", w1.String())
}
