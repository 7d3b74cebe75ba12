package tts

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"subvoice/internal/logging"
)

// Voice describes one installed synthesizer voice.
type Voice struct {
	Name        string
	Locale      string
	Description string
}

// LanguageName renders the voice locale as a human-readable language name,
// falling back to the raw locale tag when it cannot be parsed.
func (v Voice) LanguageName() string {
	tag, err := language.Parse(strings.ReplaceAll(v.Locale, "_", "-"))
	if err != nil {
		return v.Locale
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return v.Locale
}

// FallbackVoices is returned when voice enumeration fails or yields nothing,
// so a voice picker always has something to offer.
func FallbackVoices() []Voice {
	return []Voice{
		{Name: "Alex", Locale: "en_US"},
		{Name: "Samantha", Locale: "en_US"},
	}
}

// ListVoices queries the speech backend for its installed voices. An
// unreachable backend or an empty listing yields the fallback set rather than
// an error.
func (e *Engine) ListVoices(ctx context.Context) ([]Voice, error) {
	output, err := e.run(ctx, e.binary, "-v", "?")
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("voice enumeration failed, using fallback list", logging.Error(err))
		}
		return FallbackVoices(), nil
	}
	voices := parseVoiceList(output)
	if len(voices) == 0 {
		return FallbackVoices(), nil
	}
	sort.Slice(voices, func(i, j int) bool { return voices[i].Name < voices[j].Name })
	return voices, nil
}

// parseVoiceList interprets the backend's voice listing. Each line has the
// form "Name            locale    # sample sentence"; names may contain
// spaces, so the locale is located by scanning for the token preceding the
// comment marker.
func parseVoiceList(output string) []Voice {
	var voices []Voice
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		head, description, _ := strings.Cut(line, "#")
		fields := strings.Fields(head)
		if len(fields) < 2 {
			continue
		}
		locale := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{
			Name:        name,
			Locale:      locale,
			Description: strings.TrimSpace(description),
		})
	}
	return voices
}
