// Copyright 2025 walteh LLC
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

/*
Package symbol owns the canonical set of trigger -> replacement mappings.

A Table is constructed over a Store and an optional change callback:

	table, err := symbol.NewTable(store, func() {
		hub.Broadcast(table.MatchList())
	})
	if err != nil {
		return err
	}
	if err := table.Open(ctx); err != nil {
		// storage failed, defaults are still in use
	}

Edits go through a WorkingCopy and reach canonical state only through
Commit, which validates, persists and notifies:

	wc := table.WorkingCopy()
	if _, err := wc.Add(":star:", "★"); err != nil {
		return err
	}
	if res := table.Commit(ctx, wc.Mappings()); !res.OK() {
		// res.Format / res.Duplicates describe every problem
	}

# Trigger kinds

Triggers bounded by single colons (":alpha:") and whitelisted tokens ("->")
are Immediate. Triggers bounded by doubled colons ("::div::") are Block.
Everything else is Delimited and only fires after whitespace.

# Match list

MatchList orders entries by trigger length descending so that the longest
trigger wins when a shorter one is its suffix. Equal lengths are ordered
alphabetically.
*/
package symbol
