package capture

import (
	"fmt"
	"time"
)

type EndReason uint8

const (
	EndReasonUndefined = EndReason(iota)
	// EndReasonFinished: the state machine decided the utterance is over.
	EndReasonFinished
	// EndReasonExhausted: the input ended first.
	EndReasonExhausted
	// EndReasonCancelled: the context was cancelled (e.g. SIGINT).
	EndReasonCancelled
)

func (r EndReason) String() string {
	switch r {
	case EndReasonUndefined:
		return "undefined"
	case EndReasonFinished:
		return "finished"
	case EndReasonExhausted:
		return "exhausted"
	case EndReasonCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("unknown_end_reason_%d", uint8(r))
	}
}

type Report struct {
	Frames           uint64
	VoiceFrames      uint64
	InvalidFrames    uint64
	BytesRead        uint64
	EndConfirmations uint
	Duration         time.Duration
	EndReason        EndReason
}

func (r Report) String() string {
	return fmt.Sprintf(
		"end:%s frames:%d voice:%d invalid:%d confirmations:%d bytes:%d duration:%v",
		r.EndReason, r.Frames, r.VoiceFrames, r.InvalidFrames, r.EndConfirmations, r.BytesRead, r.Duration,
	)
}
