package tts

import (
	"context"
	"errors"
	"testing"
)

const voiceListing = `Alex                en_US    # Most people recognize me by my voice.
Amelie              fr_CA    # Bonjour, je m'appelle Amelie.
Bad News            en_US    # The light you see at the end of the tunnel is the headlamp of a fast approaching train.
Ting-Ting           zh_CN    # 你好，我叫Ting-Ting。

`

func TestParseVoiceList(t *testing.T) {
	voices := parseVoiceList(voiceListing)
	if len(voices) != 4 {
		t.Fatalf("parsed %d voices, want 4", len(voices))
	}

	byName := make(map[string]Voice, len(voices))
	for _, v := range voices {
		byName[v.Name] = v
	}

	alex, ok := byName["Alex"]
	if !ok {
		t.Fatal("missing voice Alex")
	}
	if alex.Locale != "en_US" {
		t.Fatalf("Alex locale = %q", alex.Locale)
	}
	if alex.Description != "Most people recognize me by my voice." {
		t.Fatalf("Alex description = %q", alex.Description)
	}

	badNews, ok := byName["Bad News"]
	if !ok {
		t.Fatal("multi-word voice names must survive parsing")
	}
	if badNews.Locale != "en_US" {
		t.Fatalf("Bad News locale = %q", badNews.Locale)
	}
}

func TestListVoicesSortsByName(t *testing.T) {
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		return "Zoe en_US # Hi.\nAlex en_US # Hello.", nil
	})
	voices, err := e.ListVoices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(voices) != 2 || voices[0].Name != "Alex" {
		t.Fatalf("voices not sorted: %+v", voices)
	}
}

func TestListVoicesFallsBackWhenBackendUnavailable(t *testing.T) {
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		return "", errors.New("command not found")
	})
	voices, err := e.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if len(voices) != 2 || voices[0].Name != "Alex" || voices[1].Name != "Samantha" {
		t.Fatalf("unexpected fallback set: %+v", voices)
	}
}

func TestListVoicesFallsBackOnEmptyListing(t *testing.T) {
	e := newTestEngine(&fakeResampler{}, func(ctx context.Context, name string, args ...string) (string, error) {
		return "\n\n", nil
	})
	voices, err := e.ListVoices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(voices) == 0 {
		t.Fatal("expected fallback voices for empty listing")
	}
}

func TestVoiceLanguageName(t *testing.T) {
	v := Voice{Name: "Amelie", Locale: "fr_CA"}
	if got := v.LanguageName(); got != "Canadian French" {
		t.Fatalf("LanguageName = %q", got)
	}
	unknown := Voice{Name: "Mystery", Locale: "not-a-locale-at-all!"}
	if got := unknown.LanguageName(); got != "not-a-locale-at-all!" {
		t.Fatalf("unparseable locale should fall back: %q", got)
	}
}
