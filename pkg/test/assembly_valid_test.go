// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package test

import (
	"testing"

	"github.com/consensys/go-carbon/pkg/test/util"
)

func Test_AsmValid_Basic_01(t *testing.T) {
	util.CheckValid(t, "asm/valid/basic_01")
}

func Test_AsmValid_Registers_01(t *testing.T) {
	util.CheckValid(t, "asm/valid/registers_01")
}

// ===================================================================
// Branch Tests
// ===================================================================

func Test_AsmValid_Branch_01(t *testing.T) {
	util.CheckValid(t, "asm/valid/branch_01")
}

func Test_AsmValid_Branch_02(t *testing.T) {
	util.CheckValid(t, "asm/valid/branch_02")
}

// ===================================================================
// Layout Tests
// ===================================================================

func Test_AsmValid_Pages_01(t *testing.T) {
	util.CheckValid(t, "asm/valid/pages_01")
}

func Test_AsmValid_FullPage_01(t *testing.T) {
	util.CheckValid(t, "asm/valid/full_page_01")
}

func Test_AsmValid_Comments_01(t *testing.T) {
	util.CheckValid(t, "asm/valid/comments_01")
}
