// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

const (
	// WatcherLoggerPrefix - logging channel of the watcher
	WatcherLoggerPrefix = "config-watcher"
)

// Watcher - report writes to and removal of one file
//
// the containing directory is watched so that editors which replace
// the file are seen as a change
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
}

// NewWatcher - create a watcher for an existing file
func NewWatcher(log *logger.L, targetFile string) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
	}
	return w, nil
}

// Change - receives after each modification
func (w *Watcher) Change() <-chan struct{} {
	return w.change
}

// Remove - receives when the file is removed or renamed away
func (w *Watcher) Remove() <-chan struct{} {
	return w.remove
}

// FilePath - absolute path of the watched file
func (w *Watcher) FilePath() string {
	return w.filePath
}

// Run - background process to forward file events
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %s", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue
			}
			w.log.Debugf("file event: %s", event)

			switch {
			case eventFileRemove(event):
				w.log.Warnf("file: %s removed", w.filePath)
				sendEvent(w.remove)
			case eventFileChange(event):
				sendEvent(w.change)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}

	w.watcher.Close()
	w.log.Info("stopped")
}

// never blocks, pending events are coalesced
func sendEvent(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func eventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func eventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
