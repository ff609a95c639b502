// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if "" == filePath {
		return ""
	}
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// WriteSecretFile - create a file readable only by the owner
//
// an existing file is never overwritten
func WriteSecretFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o700); nil != err {
		return err
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if nil != err {
		return err
	}
	_, err = f.Write(data)
	if closeErr := f.Close(); nil == err {
		err = closeErr
	}
	if nil != err {
		_ = os.Remove(name)
	}
	return err
}

// ReadFile - read a whole file
func ReadFile(name string) ([]byte, error) {
	return ioutil.ReadFile(name)
}
