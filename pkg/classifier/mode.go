package classifier

import (
	"fmt"
	"strings"
)

// Mode is the aggressiveness of a classifier: the higher the mode, the more
// likely a frame is reported as silence.
type Mode int

const (
	ModeQuality = Mode(iota)
	ModeLowBitrate
	ModeAggressive
	ModeVeryAggressive
	EndOfMode
)

func (m Mode) String() string {
	switch m {
	case ModeQuality:
		return "quality"
	case ModeLowBitrate:
		return "low-bitrate"
	case ModeAggressive:
		return "aggressive"
	case ModeVeryAggressive:
		return "very-aggressive"
	default:
		return fmt.Sprintf("unknown_mode_%d", int(m))
	}
}

// ParseMode accepts the names returned by String, the CamelCase names
// ("VeryAggressive") and the numeric levels 0-3.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for m := ModeQuality; m < EndOfMode; m++ {
		name := m.String()
		if normalized == name ||
			normalized == strings.ReplaceAll(name, "-", "") ||
			normalized == fmt.Sprint(int(m)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown classifier mode '%s'", s)
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type implements pflag.Value.
func (Mode) Type() string {
	return "mode"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	return m.Set(string(b))
}
