// Package langdetect recognizes SuperCollider sources. It uses go-enry for
// extension, shebang, alias and classifier lookups and adds a few sclang
// patterns enry's classifier does not weigh.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	LangSuperCollider = "supercollider"
	LangText          = "text"
)

// enryName is the linguist name for SuperCollider.
const enryName = "SuperCollider"

// classifierCandidates are the languages sclang is most often confused with.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	enryName, "Scala", "JavaScript", "Ruby", "Smalltalk", "C++", "Python",
}

// sclangMarkers are substrings that almost only occur in sclang code.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sclangMarkers = [][]byte{
	[]byte("SynthDef("),
	[]byte("SynthDef.new("),
	[]byte("Pbind("),
	[]byte("Routine {"),
	[]byte("Routine({"),
	[]byte("s.boot"),
	[]byte("s.waitForBoot"),
	[]byte(".ar("),
	[]byte(".kr("),
	[]byte("thisProcess."),
}

// Detect returns LangSuperCollider when content looks like sclang and
// LangText otherwise.
func Detect(content []byte) string {
	if IsSuperColliderContent(content) {
		return LangSuperCollider
	}
	return LangText
}

// IsSuperColliderContent inspects content without a file name: a shebang
// naming sclang, a known sclang construct, or a confident classifier vote.
func IsSuperColliderContent(content []byte) bool {
	if len(bytes.TrimSpace(content)) == 0 {
		return false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang == enryName
	}

	for _, marker := range sclangMarkers {
		if bytes.Contains(content, marker) {
			return true
		}
	}

	lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates)
	return safe && lang == enryName
}

// IsSuperColliderPath reports whether path should be formatted when found
// while walking a directory. Extensions, when non-empty, are matched
// case-insensitively; otherwise enry's extension table decides.
func IsSuperColliderPath(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}

	if len(extensions) > 0 {
		return slices.ContainsFunc(extensions, func(want string) bool {
			return strings.EqualFold(want, ext)
		})
	}

	return slices.Contains(enry.GetLanguagesByExtension(path, nil, nil), enryName)
}

// IsFenceLanguage reports whether a Markdown fence info string names
// SuperCollider. Only the first word of info counts. It matches languages
// (case-insensitive) or, when languages is empty, any enry alias of
// SuperCollider.
func IsFenceLanguage(info string, languages []string) bool {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return false
	}
	tag := strings.Trim(fields[0], "{}")
	tag = strings.ToLower(strings.TrimPrefix(tag, "."))

	if len(languages) > 0 {
		return slices.ContainsFunc(languages, func(lang string) bool {
			return strings.EqualFold(lang, tag)
		})
	}

	lang, ok := enry.GetLanguageByAlias(tag)
	return ok && lang == enryName
}
