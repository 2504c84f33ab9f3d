// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package estree defines the ESTree node set used by jsast and its JSON form.
//
// The node set is the ES2017 subset emitted by esprima 4: one struct per node
// type, grouped into the Statement, Expression, Pattern and ModuleSpecifier
// categories through unexported marker methods. Encode writes a tree with the
// "type" tag first and fields in esprima order; Decode reads one back and
// rejects anything outside the node set with a *DecodeError.
package estree
