package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

const lockTimeout = 5 * time.Second

var errLockTimeout = errors.New("lock timeout")

// fileLock is an advisory exclusive lock on path+".lock", held for the
// duration of a create so two wsp invocations never race on the
// same file (spec.md's Non-goals exclude concurrent writers inside the
// engine; this only protects the CLI's own serialized access to it).
type fileLock struct {
	file *os.File
}

func acquireLock(path string) (*fileLock, error) {
	lockPath := path + ".lock"
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o640) //nolint:gosec // path is caller-controlled CLI input
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	deadline := time.Now().Add(lockTimeout)
	const retryInterval = 10 * time.Millisecond
	for {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err == nil {
			return &fileLock{file: file}, nil
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: %s", errLockTimeout, path)
		}
		time.Sleep(retryInterval)
	}
}

func (l *fileLock) release() {
	_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	_ = l.file.Close()
}
