package poetry

import "errors"

var (
	// ErrMalformedInput marks input the phonological analyzer cannot use:
	// empty forms, forms without a stress marker, or emotion vectors missing
	// one of the fixed labels. During bulk builds such entries are skipped
	// and tallied; on the direct request path the error surfaces as-is.
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptyCorpus means a lookup build was left with zero usable words
	// after filtering malformed entries. Fatal to startup.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrGenerationParse means the oracle's output could not be parsed into
	// the required number of poem lines. Never retried at this layer; the
	// caller owns re-prompt policy.
	ErrGenerationParse = errors.New("unparsable generation output")
)
