// Package scenes turns loosely structured story text into a short ordered list of scenes.
package scenes

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// MaxScenes is the upper bound on the number of scenes returned by Normalize.
const MaxScenes = 5

// Kind records which attempt produced a Result.
type Kind int

const (
	// KindStructured means the text was a JSON object with a non-empty "scenes" array.
	KindStructured Kind = iota
	// KindParagraphs means the text was split on blank lines.
	KindParagraphs
	// KindRaw means the whole text was used as the only scene.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindParagraphs:
		return "paragraphs"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Result is the outcome of Parse. Scenes always holds between 1 and MaxScenes entries.
type Result struct {
	Kind   Kind
	Scenes []string
}

// attempt returns ok=false when it has nothing to offer and the next attempt should run.
type attempt func(text string) (Result, bool)

var chain = []attempt{
	structured,
	paragraphs,
	raw,
}

// Parse runs the attempts in order and returns the first one that produced scenes.
func Parse(text string) Result {
	for _, try := range chain {
		if res, ok := try(text); ok {
			if len(res.Scenes) > MaxScenes {
				res.Scenes = res.Scenes[:MaxScenes]
			}
			return res
		}
	}
	// raw never declines
	return Result{Kind: KindRaw, Scenes: []string{text}}
}

// Normalize returns between 1 and MaxScenes scenes for any input. It never fails.
func Normalize(text string) []string {
	return Parse(text).Scenes
}

func structured(text string) (Result, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return Result{}, false
	}
	rawScenes, ok := obj["scenes"]
	if !ok {
		return Result{}, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawScenes, &items); err != nil || len(items) == 0 {
		return Result{}, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		// non-string elements keep their JSON text
		out = append(out, compact(item))
	}
	return Result{Kind: KindStructured, Scenes: out}, true
}

var blankLineRX = regexp.MustCompile(`\n\s*\n`)

func paragraphs(text string) (Result, bool) {
	var out []string
	for _, part := range blankLineRX.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return Result{}, false
	}
	return Result{Kind: KindParagraphs, Scenes: out}, true
}

func raw(text string) (Result, bool) {
	return Result{Kind: KindRaw, Scenes: []string{text}}, true
}

func compact(msg json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, msg); err != nil {
		return string(msg)
	}
	return buf.String()
}
