package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"carelens/internal/core/catalog"
	"carelens/internal/core/merge"
	"carelens/internal/core/sdoh"
	"carelens/internal/platform/logger"
	"carelens/internal/services/detect/domain"
	svc "carelens/internal/services/detect/service"
)

// input is the scan file shape: either a bare line array or a full
// detect request with context
type input struct {
	MemberID   string                `json:"memberId,omitempty"`
	Transcript []sdoh.TranscriptLine `json:"transcript"`
	Context    *domain.ContextInput  `json:"context,omitempty"`
}

func main() {
	var (
		file   = flag.String("file", "", "transcript JSON file (- for stdin)")
		pretty = flag.Bool("pretty", true, "indent the result JSON")
	)
	flag.Parse()

	l := logger.Get()

	if *file == "" {
		l.Fatal().Msg("-file is required")
	}

	raw, err := readAll(*file)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("read transcript")
	}

	in, err := parse(raw)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("parse transcript")
	}

	cat, err := catalog.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("load catalog")
	}

	// Offline scan runs the rule-based engine only; no inference client
	s := svc.New(cat, nil, svc.Config{Policy: merge.Policy{}})
	res, err := s.Detect(context.Background(), domain.DetectInput{
		MemberID:   in.MemberID,
		Transcript: in.Transcript,
		Context:    in.Context,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("detect")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		l.Fatal().Err(err).Msg("encode result")
	}
}

func readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func parse(raw []byte) (input, error) {
	var in input
	if err := json.Unmarshal(raw, &in); err == nil && len(in.Transcript) > 0 {
		return in, nil
	}
	// bare line array fallback
	var lines []sdoh.TranscriptLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return input{}, err
	}
	return input{Transcript: lines}, nil
}
