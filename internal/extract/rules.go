// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// maxLineSize bounds a single artifact line.
const maxLineSize = 1 << 20

var (
	constantRe = regexp.MustCompile(`^\s*public static final [^ ]+ ([A-Z0-9_]+) ?=`)
	methodRe   = regexp.MustCompile(`^\s*public static [^ ]+ ([a-zA-Z0-9_]+)\(`)
	sectionRe  = regexp.MustCompile(`Section ([0-9.]+)`)
	quotedRe   = regexp.MustCompile(`"([^"]+)"`)
)

// lineRule extracts zero or more raw identifiers from one artifact line.
type lineRule func(e *Extractor, line string) []string

// lineRules run in order on every line. Each rule is independent; a line
// that matches none contributes nothing.
var lineRules = []lineRule{
	constantName,
	callableName,
	sectionReference,
	keywordLiterals,
}

// constantName captures UPPER_SNAKE names of "public static final" fields.
func constantName(_ *Extractor, line string) []string {
	if m := constantRe.FindStringSubmatch(line); m != nil {
		return []string{m[1]}
	}
	return nil
}

// callableName captures names declared as "public static <type> name(".
func callableName(_ *Extractor, line string) []string {
	if m := methodRe.FindStringSubmatch(line); m != nil {
		return []string{m[1]}
	}
	return nil
}

// sectionReference captures the first "Section <number>" token on the line.
func sectionReference(_ *Extractor, line string) []string {
	if m := sectionRe.FindString(line); m != "" {
		return []string{m}
	}
	return nil
}

// keywordLiterals captures every double-quoted literal that contains a
// catalog keyword.
func keywordLiterals(e *Extractor, line string) []string {
	var out []string
	for _, m := range quotedRe.FindAllStringSubmatch(line, -1) {
		if e.catalog.ContainsAny(m[1]) {
			out = append(out, m[1])
		}
	}
	return out
}

// RuleLine returns the normalized identifiers contributed by one line, in
// rule order. The result may contain duplicates; sets dedupe on insert.
func (e *Extractor) RuleLine(line string) []string {
	var out []string
	for _, rule := range lineRules {
		for _, id := range rule(e, line) {
			if id = normalize(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

// Rules scans r line by line and returns the identifier set.
func (e *Extractor) Rules(r io.Reader) (types.IdentifierSet, error) {
	ids := types.NewIdentifierSet()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		for _, id := range e.RuleLine(sc.Text()) {
			ids.Add(id)
		}
	}
	if err := sc.Err(); err != nil {
		return ids, fmt.Errorf("scanning artifact: %w", err)
	}
	return ids, nil
}

// RulesFromFile extracts identifiers from the artifact at path. A missing
// file yields an empty set together with an error wrapping os.ErrNotExist;
// callers decide whether that is fatal or a warning.
func (e *Extractor) RulesFromFile(path string) (types.IdentifierSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.NewIdentifierSet(), fmt.Errorf("opening artifact %s: %w", path, err)
	}
	defer f.Close()

	ids, err := e.Rules(f)
	if err != nil {
		return ids, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
