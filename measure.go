package apiclient

import (
	"fmt"
	"time"
)

// DefaultMeasure returns the standard measurement hook. It times the thunk
// and logs "[API] <endpoint> took <N>ms" through logger at Info level,
// propagating the thunk's result and error unchanged. A nil logger yields a
// pure pass-through timer.
func DefaultMeasure(logger Logger) MeasureFunc {
	return func(endpoint string, thunk func() (any, error)) (any, error) {
		start := time.Now()
		result, err := thunk()
		if logger != nil {
			logger.Info(fmt.Sprintf("[API] %s took %dms", endpoint, time.Since(start).Milliseconds()))
		}
		return result, err
	}
}
