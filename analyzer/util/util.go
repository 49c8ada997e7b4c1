package util

import (
	"sync"
)

type Pass[T any] interface {
	Process(T)
}

func Process[T any](
	node T,
	passes [][]Pass[T], // sequence of parallelizable passes
	shouldEarlyExit func() bool, // optional
) {
	for _, parallelPasses := range passes {
		wg := sync.WaitGroup{}
		wg.Add(len(parallelPasses))
		for _, pass := range parallelPasses {
			go func(pass Pass[T]) {
				pass.Process(node)
				wg.Done()
			}(pass)
		}

		wg.Wait()

		if shouldEarlyExit != nil && shouldEarlyExit() {
			return
		}
	}
}

func ParallelProcess[T any](
	list []T,
	process func(int, T),
) {
	wg := sync.WaitGroup{}
	wg.Add(len(list))
	for idx, item := range list {
		go func(idx int, item T) {
			process(idx, item)
			wg.Done()
		}(idx, item)
	}
	wg.Wait()
}
