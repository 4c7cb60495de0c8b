package module

import (
	"time"

	"carelens/internal/core/merge"
	"carelens/internal/platform/config"
)

// Options holds configuration settings for the detect module
type Options struct {
	Workers          int
	StatusTieBreak   string
	InferenceAPIKey  string
	InferenceModel   string
	InferenceBaseURL string
	InferenceTimeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	df := cfg.Prefix("DETECT_")
	return Options{
		Workers:          df.MayInt("WORKERS", 4),
		StatusTieBreak:   df.MayEnum("STATUS_TIE_BREAK", "incoming", "incoming", "resolved"),
		InferenceAPIKey:  df.MayString("INFERENCE_API_KEY", ""),
		InferenceModel:   df.MayString("INFERENCE_MODEL", ""),
		InferenceBaseURL: df.MayString("INFERENCE_BASE_URL", ""),
		InferenceTimeout: df.MayDuration("INFERENCE_TIMEOUT", 12*time.Second),
	}
}

// TieBreakPolicy maps the configured name onto a merge policy
func (o Options) TieBreakPolicy() merge.Policy {
	if o.StatusTieBreak == "resolved" {
		return merge.Policy{StatusTieBreak: merge.TieBreakResolved}
	}
	return merge.Policy{StatusTieBreak: merge.TieBreakIncoming}
}
