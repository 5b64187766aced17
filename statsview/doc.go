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

// Package statsview provides an optional local HTTP server with runtime
// statistics. It is only built when the statsview build constraint is
// present:
//
//	go build -tags statsview
//
// After launch, graphical statistics are viewable at
// localhost:12480/debug/statsview and standard Go pprof statistics at
// localhost:12480/debug/pprof/.
package statsview
