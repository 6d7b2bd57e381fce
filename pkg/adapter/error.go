package adapter

import "github.com/cockroachdb/errors"

// ErrEmptyResponse is returned when a provider answers without any generated text.
var ErrEmptyResponse = errors.New("model returned no text")

// ErrUnknownAdapter is returned by New for an unrecognized adapter name.
var ErrUnknownAdapter = errors.New("unknown adapter")

func emptyResponse(adapter, model string) error {
	return errors.Wrapf(ErrEmptyResponse, "%s/%s", adapter, model)
}

func apiError(adapter string, err error) error {
	return errors.Wrapf(err, "%s API error", adapter)
}
