// Package flock provides cross-platform file locking utilities.
//
// bob uses an exclusive, non-blocking lock on a file under the working
// directory's .bob/ data dir so two runs never drive the same build tree at
// once; buildroot and genimage corrupt their output directories when raced.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - another run is active
//	}
//	defer flock.Unlock(file.Fd())
package flock
