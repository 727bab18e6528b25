// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// RequireCmpEqual compares with go-cmp, which prints a field-level diff of nested structures on failure
func RequireCmpEqual(t testing.TB, expected interface{}, actual interface{}, msgAndArgs ...interface{}) {
	if !cmp.Equal(expected, actual) {
		assert.Fail(t, fmt.Sprintf("Not equal (-expected +actual):\n%s", cmp.Diff(expected, actual)), msgAndArgs...)
		t.FailNow()
	}
}
