/*
   tibasic - TI-Basic program compiler & decompiler
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of tibasic.

   tibasic is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   tibasic is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with tibasic. If not, see <http://www.gnu.org/licenses/>.
*/

package repo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

//
const PrefixRepoRef = "repo://"

//
func newFileSource(file string) (*fileSource, error) {
	if f, err := os.Open(file); err != nil {
		return nil, err
	} else {
		return &fileSource{file: f, reader: bufio.NewReader(f)}, nil
	}
}

//
type fileSource struct {
	file   *os.File
	reader io.Reader
}

//
func (fs *fileSource) Read(p []byte) (n int, err error) {
	return fs.reader.Read(p)
}

//
func (fs *fileSource) Close() error {
	return fs.file.Close()
}

/*
	Resolve opens the program file referenced by ref inside the repository
	folder repo. References cannot point outside of the repository.
*/
func Resolve(ref, repo string) (io.ReadCloser, error) {

	log.WithFields(log.Fields{
		"reference":  ref,
		"repository": repo,
	}).Debug("resolving ref")

	if !IsReference(ref) {
		return nil, fmt.Errorf("unsupported reference: '%s'", ref)
	}

	if repo == "" {
		return nil, fmt.Errorf("program repository is not enabled")
	}

	path, err := Path(ref, repo)
	if err != nil {
		return nil, err
	}

	return newFileSource(path)
}

// Path returns the file system path for ref inside repo.
func Path(ref, repo string) (string, error) {

	rel := strings.TrimPrefix(ref, PrefixRepoRef)
	if rel == "" {
		return "", fmt.Errorf("empty reference")
	}

	for _, e := range strings.Split(filepath.ToSlash(rel), "/") {
		if e == ".." {
			return "", fmt.Errorf("reference leaves repository: '%s'", ref)
		}
	}

	return filepath.Join(repo, filepath.FromSlash(rel)), nil
}

//
func IsReference(r string) bool {
	return strings.HasPrefix(r, PrefixRepoRef)
}
