// Copyright 2024 The pqinspect Authors
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

package pqtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/rogpeppe/go-internal/txtar"

	"github.com/pqlang/pqinspect/pqinspect"
)

// golden reads and parses a fixture's archive under testdata: one archive
// per scenario, named after Fixture.Name.
func golden(t *testing.T, name string) *txtar.Archive {
	t.Helper()
	path := filepath.Join("testdata", name+".txtar")
	data, err := os.ReadFile(path)
	qt.Assert(t, qt.IsNil(err))
	return txtar.Parse(data)
}

func fileInArchive(a *txtar.Archive, name string) (string, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

func TestGoldenFixtures(t *testing.T) {
	for _, fx := range All() {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			archive := golden(t, fx.Name)

			source, ok := fileInArchive(archive, "source")
			qt.Assert(t, qt.IsTrue(ok))
			qt.Assert(t, qt.Equals(source, fx.Source+"\n"))

			want, ok := fileInArchive(archive, "want")
			qt.Assert(t, qt.IsTrue(ok))

			insp := pqinspect.Inspect(fx.Collection, fx.Caret, nil, pqinspect.CommonSettings{})
			got := FormatInspection(insp)

			qt.Assert(t, qt.Equals(got, want))
		})
	}
}
