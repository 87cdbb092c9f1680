package endpoint

import (
	"fmt"
)

type Classification uint8

const (
	ClassificationInvalid = Classification(iota)
	ClassificationSilence
	ClassificationVoice
)

func (c Classification) String() string {
	switch c {
	case ClassificationInvalid:
		return "invalid"
	case ClassificationSilence:
		return "silence"
	case ClassificationVoice:
		return "voice"
	default:
		return fmt.Sprintf("unknown_classification_%d", uint8(c))
	}
}

// ClassificationFromResult converts a classifier result into a
// Classification: any error makes the frame invalid.
func ClassificationFromResult(isVoice bool, err error) Classification {
	switch {
	case err != nil:
		return ClassificationInvalid
	case isVoice:
		return ClassificationVoice
	default:
		return ClassificationSilence
	}
}
