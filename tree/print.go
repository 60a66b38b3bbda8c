// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The sideways layout below follows avl/print.go from bitmarkd:
//
// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"io"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Print writes an ASCII drawing of the tree, right subtree on top, and
// returns its depth. With printData each node also shows its data,
// balance factor and cached height.
func (t *SearchTree[K, V]) Print(w io.Writer, printData bool) (int, error) {
	p := &printer{w: w}
	if t.root == Nil {
		p.printf("(empty)\n")
		return 0, p.err
	}
	depth := t.printTree(p, t.root, "", rootBranch, printData)
	return depth, p.err
}

func (t *SearchTree[K, V]) printTree(p *printer, id NodeID, prefix string, br branch, printData bool) int {
	if id == Nil {
		return 0
	}
	n := t.nodes.at(id)
	rd := 0
	ld := 0
	if n.right != Nil {
		pad := "       "
		if br == leftBranch {
			pad = "|      "
		}
		rd = t.printTree(p, n.right, prefix+pad, rightBranch, printData)
	}
	switch br {
	case rootBranch:
		p.printf("%s|------+ ", prefix)
	case leftBranch:
		p.printf("%s\\------+ ", prefix)
	case rightBranch:
		p.printf("%s/------+ ", prefix)
	}
	if printData {
		p.printf("%v → %v %+d/h%d\n", n.key, n.data, t.BalanceFactor(id), n.height)
	} else {
		p.printf("%v\n", n.key)
	}
	if n.left != Nil {
		pad := "       "
		if br == rightBranch {
			pad = "|      "
		}
		ld = t.printTree(p, n.left, prefix+pad, leftBranch, printData)
	}
	return 1 + max(rd, ld)
}
