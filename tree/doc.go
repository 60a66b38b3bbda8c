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

// Package tree implements an in-memory ordered index: a plain binary
// search tree (SearchTree) and an AVL height-balanced variant
// (BalancedTree) built on top of it.
//
// Nodes live in an arena owned by the tree and are addressed through
// NodeID handles. There are no parent pointers; whenever a parent is
// needed it is derived from the root-to-node path. A handle to a deleted
// node is stale and every query given one answers "not found".
//
// Note: a tree is not safe for concurrent use. Either access it from a
// single goroutine or guard the whole tree with one mutex held across any
// Insert or Delete. Read-only queries may share a RWMutex read lock.
package tree
