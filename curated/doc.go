// This file is part of Speccy48.
//
// Speccy48 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Speccy48 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Speccy48.  If not, see <https://www.gnu.org/licenses/>.

// Package curated provides the error type used throughout the project.
// Errors are created with the Errorf() function:
//
//	err := curated.Errorf("tape: unsupported block (%#02x)", id)
//
// The pattern string given to Errorf() is the identity of the error.
// Packages that want their errors to be identifiable declare the pattern as
// an exported const:
//
//	const ParseError = "tape: parse error: %v"
//
// and callers test for it with Is() or, if the error may have been wrapped
// in further curated errors along the way, Has():
//
//	if curated.Is(err, tape.ParseError) {
//		...
//	}
//
// Wrapping happens naturally by passing an error as a formatting argument to
// Errorf(). The Error() function de-duplicates adjacent identical message
// parts so that wrapped errors do not stutter when printed.
package curated
