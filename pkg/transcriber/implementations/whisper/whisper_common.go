package whisper

// SampleRate is the only sample rate whisper models accept.
const SampleRate = 16000

// DefaultModelPath is where the model is looked up when none is configured.
const DefaultModelPath = "models/ggml-base.en.bin"
