// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package importer reads survey questions from spreadsheets.

The first row is the header. Columns are matched case-insensitively:

  - question number: contains "question no", or is "no" / "no."
  - question text: is "question", or contains "question text"
  - options: start at the first header containing "option" or "choice"

Unmatched columns fall back to positions 0, 1 and 2. Empty option cells are
dropped and blank rows skipped.

	questions, err := importer.Parse(header.Filename, file)
*/
package importer
