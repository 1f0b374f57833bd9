//go:build !opencv

package render

import "errors"

var errOpenCVUnavailable = errors.New("opencv color engine requires a build with -tags opencv")

func newOpenCVEngine() (ColorEngine, error) {
	return nil, errOpenCVUnavailable
}
