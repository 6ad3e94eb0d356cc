package cli

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/dataset"
)

// loadDataset returns the dataset selected by --dataset, or the embedded
// one when no path is set.
func (opts *RootOptions) loadDataset() (*dataset.Dataset, error) {
	if opts.Dataset == "" {
		return dataset.Default(), nil
	}
	ds, err := dataset.LoadFile(opts.Dataset)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("dataset loaded", "path", opts.Dataset)
	return ds, nil
}

// datasetErrorCode maps a dataset load failure to its E2xx code.
func datasetErrorCode(err error) string {
	var le *dataset.LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}
