package pages

import (
	"context"
	"strings"

	"github.com/jkoster/webfolio/internal/llm"
	"github.com/jkoster/webfolio/internal/stage"
)

// AnalyzeRequiredFiles asks which files a task depends on and returns
// the ones that do not exist yet. The model answers in a fixed format,
// either "REQUIRED_FILES: a.css, b.js" or "NO_FILES_REQUIRED"; a reply
// in neither format is treated as requiring nothing.
func AnalyzeRequiredFiles(ctx context.Context, runner *stage.Runner, task string, existing []string) ([]string, error) {
	reply, err := runner.Client.Complete(ctx, llm.Request{
		Messages: promptMessages("pages.json", "required-files", map[string]string{
			"Task":  task,
			"Files": strings.Join(existing, ", "),
		}),
		Tier: llm.TierLite,
	})
	if err != nil {
		return nil, err
	}

	required := parseRequiredFiles(reply)
	if len(required) == 0 {
		return nil, nil
	}

	have := make(map[string]bool, len(existing))
	for _, f := range existing {
		have[strings.ToLower(f)] = true
	}

	var missing []string
	for _, f := range required {
		if !have[strings.ToLower(f)] {
			missing = append(missing, f)
		}
	}
	return missing, nil
}

func parseRequiredFiles(reply string) []string {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "NO_FILES_REQUIRED") {
			return nil
		}
		rest, found := strings.CutPrefix(line, "REQUIRED_FILES:")
		if !found {
			continue
		}
		var files []string
		for _, f := range strings.Split(rest, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
		return files
	}
	return nil
}
