// Package locales maps the host server's language codes to BCP 47 tags.
package locales

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Reference is the language whose mod strings back-fill every other language.
const Reference = "en"

// ServerLanguages lists the language codes the host ships locale tables for.
var ServerLanguages = []string{"ch", "cz", "en", "es", "es-mx", "fr", "ge", "hu", "it", "jp", "pl", "po", "ru", "sk", "tu"}

// Server codes that are not valid BCP 47 language subtags, or that name a
// different language when read as one.
var aliases = map[string]string{
	"ch": "zh",
	"cz": "cs",
	"ge": "de",
	"jp": "ja",
	"kr": "ko",
	"po": "pt",
	"tu": "tr",
}

func Tag(code string) (language.Tag, error) {
	bcp := code
	if alias, ok := aliases[code]; ok {
		bcp = alias
	}
	tag, err := language.Parse(bcp)
	if err != nil {
		return language.Und, fmt.Errorf("unknown language code %q: %w", code, err)
	}
	return tag, nil
}

func Known(code string) bool {
	_, err := Tag(code)
	return err == nil
}

// DisplayName returns the English name of the language, or the code itself
// when it cannot be resolved.
func DisplayName(code string) string {
	tag, err := Tag(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}
