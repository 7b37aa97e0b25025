// Package assemble combines generated fragments into whole page files.
// Markup is combined deterministically; stylesheets and scripts are
// merged through the model because naive concatenation leaves duplicate
// rules and colliding declarations.
package assemble

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jkoster/webfolio/internal/extract"
	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/prompts"
	"github.com/jkoster/webfolio/internal/stage"
)

// Assembler merges page fragments. Runner is used only for stylesheet
// and script merging.
type Assembler struct {
	Runner *stage.Runner
}

// Page inserts section fragments into a page skeleton, before </main>
// when present and before </body> otherwise. Empty fragments are
// dropped; with no usable fragments the skeleton is returned unchanged.
// The returned warnings name fragment ids that did not survive into the
// parsed result.
func (a *Assembler) Page(skeleton string, fragments []string) (string, []string, error) {
	var usable []string
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			usable = append(usable, strings.TrimSpace(f))
		}
	}
	if len(usable) == 0 {
		return skeleton, nil, nil
	}

	block := strings.Join(usable, "\n")
	page, err := insertBlock(skeleton, block)
	if err != nil {
		return "", nil, err
	}

	warnings, err := checkFragmentIDs(page, usable)
	if err != nil {
		return "", nil, err
	}
	return page, warnings, nil
}

func insertBlock(skeleton, block string) (string, error) {
	for _, closer := range []string{"</main>", "</body>"} {
		if idx := strings.LastIndex(skeleton, closer); idx >= 0 {
			return skeleton[:idx] + block + "\n" + skeleton[idx:], nil
		}
	}
	return "", fmt.Errorf("assemble: skeleton has no </main> or </body> to insert into")
}

// checkFragmentIDs parses the assembled page and reports any fragment
// root id that cannot be found in it. Browsers silently drop malformed
// markup, so a missing id means a fragment was mangled.
func checkFragmentIDs(page string, fragments []string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("assemble: parsing assembled page: %w", err)
	}

	var warnings []string
	for _, f := range fragments {
		id, ok := fragmentID(f)
		if !ok {
			continue
		}
		if doc.Find("#" + id).Length() == 0 {
			warnings = append(warnings, fmt.Sprintf("fragment #%s missing from assembled page", id))
		}
	}
	return warnings, nil
}

var idAttr = regexp.MustCompile(`id="([^"]+)"`)

// fragmentID returns the first id attribute in a fragment's raw text.
// The raw text is scanned rather than parsed so mangled markup still
// yields the id it was supposed to carry.
func fragmentID(fragment string) (string, bool) {
	m := idAttr.FindStringSubmatch(fragment)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Stylesheet merges CSS fragments into one stylesheet. Zero usable
// fragments yield an empty result and a single fragment is returned
// as is; only real merges cost a model call.
func (a *Assembler) Stylesheet(ctx context.Context, fragments []string) (string, error) {
	return a.merge(ctx, fragments, extract.KindCSS, "merge-css")
}

// Script merges JavaScript fragments into one script.
func (a *Assembler) Script(ctx context.Context, fragments []string) (string, error) {
	return a.merge(ctx, fragments, extract.KindJS, "merge-js")
}

func (a *Assembler) merge(ctx context.Context, fragments []string, kind extract.Kind, promptKey string) (string, error) {
	var usable []string
	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			usable = append(usable, strings.TrimSpace(f))
		}
	}
	switch len(usable) {
	case 0:
		return "", nil
	case 1:
		return usable[0], nil
	}

	var b strings.Builder
	for i, f := range usable {
		fmt.Fprintf(&b, "Fragment %d:\n```%s\n%s\n```\n\n", i+1, kind, f)
	}

	return a.Runner.Run(ctx, stage.Stage{
		ID:   promptKey,
		Kind: kind,
		Tier: llm.TierStandard,
	}, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.MustGet("pages.json", promptKey+"-system")},
		{Role: llm.RoleUser, Content: prompts.Format(
			prompts.MustGet("pages.json", promptKey),
			map[string]string{"Fragments": b.String()})},
	})
}
