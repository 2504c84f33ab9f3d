// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estree

// Operator sets accepted by the decoder and the code generator.
var (
	UnaryOperators = map[string]bool{
		"-": true, "+": true, "!": true, "~": true,
		"typeof": true, "void": true, "delete": true,
	}

	UpdateOperators = map[string]bool{
		"++": true, "--": true,
	}

	BinaryOperators = map[string]bool{
		"==": true, "!=": true, "===": true, "!==": true,
		"<": true, "<=": true, ">": true, ">=": true,
		"<<": true, ">>": true, ">>>": true,
		"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
		"|": true, "^": true, "&": true,
		"in": true, "instanceof": true,
	}

	LogicalOperators = map[string]bool{
		"||": true, "&&": true, "??": true,
	}

	AssignmentOperators = map[string]bool{
		"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "**=": true,
		"<<=": true, ">>=": true, ">>>=": true,
		"|=": true, "^=": true, "&=": true,
		"||=": true, "&&=": true, "??=": true,
	}
)
