// Copyright 2024 The pqinspect Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pqerrors

import (
	"fmt"

	"golang.org/x/text/language"
)

// supportedLocales lists the locale tags the core ships message templates
// for. Any CommonSettings.Locale is matched against this list; an unmatched
// locale falls back to the default (English) templates rather than
// failing the call, since locale selection only affects rendering, never
// control flow.
var supportedLocales = []language.Tag{
	language.English,
	language.BritishEnglish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// reasonTemplates maps an InvariantError.Reason format string to a
// localized rendering for a given matched locale tag. Reasons not
// present here render with the default English reason.
var reasonTemplates = map[string]map[language.Tag]string{
	"node id %d not found in collection": {
		language.BritishEnglish: "node id %d was not found in the collection",
	},
	"id %d is not a positional child of a recursive-primary-expression array wrapper": {
		language.BritishEnglish: "id %d is not a positional child of a recursive primary expression's array wrapper",
	},
}

// Localize renders an Error's Msg() under the best match for locale,
// falling back to the plain (English) rendering when locale does not
// match any supported tag or the reason has no localized variant.
func Localize(locale string, err Error) string {
	format, args := err.Msg()
	tag, _, _ := localeMatcher.Match(language.Make(locale))

	if variants, ok := reasonTemplates[format]; ok {
		if rendered, ok := variants[tag]; ok {
			return fmt.Sprintf(rendered, args...)
		}
	}
	return fmt.Sprintf(format, args...)
}
