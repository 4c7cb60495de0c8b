// Package cues classifies a transcript line's tone: whether a matched risk is
// still active, and how hedged or urgent the member sounds about it. The cue
// tables cover English and Spanish; all checks run over the full line text,
// not the matched phrase
package cues

import (
	"strings"

	"carelens/internal/core/sdoh"
)

// Confidence deltas applied when tone cues are present. Multiple cues of the
// same kind count once; urgency and hedging stack additively before clamping
const (
	urgencyBoost   = 0.08
	hedgingPenalty = 0.12
)

// resolution cues mark a risk the member says is already handled
var resolutionCues = []string{
	"no longer",
	"handled",
	"resolved",
	"taken care of",
	"got it fixed",
	"back on",
	"ya no",
	"resuelto",
	"ya se arregló",
	"ya está arreglado",
}

// pastCues mark a purely historical reference
var pastCues = []string{
	"last year",
	"used to",
	"previously",
	"a while back",
	"years ago",
	"el año pasado",
	"antes",
	"hace años",
}

// urgencyCues mark immediate need
var urgencyCues = []string{
	"right now",
	"urgent",
	"emergency",
	"tonight",
	"immediately",
	"can't wait",
	"ahora mismo",
	"urgente",
	"emergencia",
	"esta noche",
}

// hedgingCues mark uncertainty in the member's own account
var hedgingCues = []string{
	"maybe",
	"might",
	"not sure",
	"possibly",
	"i think",
	"i guess",
	"quizás",
	"quizas",
	"tal vez",
	"no estoy seguro",
	"no estoy segura",
}

// Classify decides the status of a matched risk from the line's text and
// adjusts the pattern's base confidence for tone. The adjusted confidence is
// clamped to [0.40, 0.98] and rounded to 2 decimals
func Classify(text string, baseConfidence float64) (sdoh.Status, float64) {
	lowered := strings.ToLower(text)

	status := sdoh.StatusCurrent
	switch {
	case containsAny(lowered, resolutionCues):
		status = sdoh.StatusResolved
	case containsAny(lowered, pastCues):
		status = sdoh.StatusHistorical
	}

	conf := baseConfidence
	if containsAny(lowered, urgencyCues) {
		conf += urgencyBoost
	}
	if containsAny(lowered, hedgingCues) {
		conf -= hedgingPenalty
	}

	return status, sdoh.ClampConfidence(conf, sdoh.MaxAdjusted)
}

func containsAny(lowered string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(lowered, c) {
			return true
		}
	}
	return false
}
