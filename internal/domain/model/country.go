package model

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// countryAliases covers informal names the CLDR English display names do not.
var countryAliases = map[string]string{
	"uk":                       "GBR",
	"england":                  "GBR",
	"scotland":                 "GBR",
	"wales":                    "GBR",
	"northern ireland":         "GBR",
	"great britain":            "GBR",
	"britain":                  "GBR",
	"america":                  "USA",
	"united states of america": "USA",
	"holland":                  "NLD",
	"korea":                    "KOR",
	"republic of korea":        "KOR",
	"russian federation":       "RUS",
	"czech republic":           "CZE",
	"uae":                      "ARE",
	"turkey":                   "TUR",
}

// countryNames maps lower-cased English country names to alpha-3 codes.
var countryNames = sync.OnceValue(func() map[string]string {
	names := make(map[string]string, 256)
	namer := display.English.Regions()
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() {
				continue
			}
			iso3 := region.ISO3()
			if iso3 == "" {
				continue
			}
			if name := namer.Name(region); name != "" {
				names[strings.ToLower(name)] = iso3
			}
		}
	}
	return names
})

// NormalizeCountry maps an ISO 3166-1 alpha-2 or alpha-3 code, or an English
// country name, to the upper-case alpha-3 code the catalog stores. Anything it
// cannot resolve becomes "", which marks the country unknown. A trailing
// ", Country" segment such as "Berlin, Germany" is also resolved.
func NormalizeCountry(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if code := lookupCountry(raw); code != "" {
		return code
	}
	if i := strings.LastIndex(raw, ","); i >= 0 {
		return lookupCountry(raw[i+1:])
	}
	return ""
}

func lookupCountry(s string) string {
	key := strings.ToLower(strings.Trim(strings.TrimSpace(s), "."))
	key = strings.TrimPrefix(key, "the ")
	if key == "" {
		return ""
	}
	if code, ok := countryAliases[key]; ok {
		return code
	}
	if len(key) == 2 || len(key) == 3 {
		if region, err := language.ParseRegion(key); err == nil && region.IsCountry() {
			if iso3 := region.Canonicalize().ISO3(); iso3 != "" {
				return iso3
			}
		}
	}
	return countryNames()[key]
}
