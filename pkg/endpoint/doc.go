// Package endpoint decides, frame by frame, when an utterance starts and
// when the capture session is over.
//
// The decision is driven only by a per-frame voice/silence classification.
// Two silence thresholds give hysteresis: a short pause downgrades the phase
// to PhasePossiblyEnding, a long one concludes the current speech burst. The
// session finishes only after EndConfirmationThreshold bursts have been
// concluded this way. Leading silence before the first speech is absorbed by
// a grace period of InitialSilenceThreshold frames.
//
// Transition is a pure function over a State value; Machine is a thin
// stateful wrapper for use in a read loop.
package endpoint
