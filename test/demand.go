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

package test

import (
	"testing"
)

// DemandEquality is the same as ExpectEquality except that the test will
// fail immediately on failure.
func DemandEquality[T comparable](t *testing.T, value T, expectedValue T, tags ...any) {
	t.Helper()
	if value != expectedValue {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v' %v", value, value, expectedValue, tags)
	}
}

// DemandSuccess is the same as ExpectSuccess except that the test will fail
// immediately on failure.
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !success(v) {
		t.Fatalf("success test failed: %v %v", v, tags)
	}
}

// DemandFailure is the same as ExpectFailure except that the test will fail
// immediately on failure.
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	if success(v) {
		t.Fatalf("failure test failed: %v %v", v, tags)
	}
}
