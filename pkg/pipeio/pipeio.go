// Package pipeio shuttles data between two streams until either side
// stops, closing both ends exactly once.
package pipeio

import (
	"fmt"
	"io"
	"sync"
)

// Pipe copies rwc1 to rwc2 and rwc2 to rwc1 until one direction ends,
// then closes both. Copy errors are reported through logfunc; a nil
// logfunc discards them.
func Pipe(rwc1 io.ReadWriteCloser, rwc2 io.ReadWriteCloser, logfunc func(error)) {
	if logfunc == nil {
		logfunc = func(error) {}
	}

	var wg sync.WaitGroup
	var o sync.Once

	close := func() {
		rwc1.Close()
		rwc2.Close()

		wg.Done()
	}
	wg.Add(1)

	go func() {
		if _, err := io.Copy(rwc1, rwc2); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc1, rwc2): %w", err))
		}

		o.Do(close)
	}()

	go func() {
		if _, err := io.Copy(rwc2, rwc1); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc2, rwc1): %w", err))
		}

		o.Do(close)
	}()

	wg.Wait()
}
