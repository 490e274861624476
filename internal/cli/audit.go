package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// Apple HIG minimum tap target, in points
const minTapTarget = 44.0

// Element types a user interacts with directly
var interactiveTypes = map[domain.ElementType]bool{
	"Button":           true,
	"TextField":        true,
	"SecureTextField":  true,
	"Switch":           true,
	"Slider":           true,
	"Link":             true,
	"Cell":             true,
	"SegmentedControl": true,
}

// AuditCmd checks the current screen for accessibility problems
type AuditCmd struct {
	Udid   string `help:"Simulator UDID or name"`
	Strict bool   `help:"Treat warnings as failures (non-zero exit)"`
}

// auditIssue is one finding on the current screen
type auditIssue struct {
	Severity string `json:"severity"` // error or warning
	Rule     string `json:"rule"`
	Element  string `json:"element"`
	Detail   string `json:"detail"`
}

// Run executes the audit command
func (c *AuditCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	client := idb.NewClient(globals.Log)
	if !client.Available() {
		return outputErrorHint(globals, "IDB_MISSING",
			"idb is not installed; accessibility auditing requires it",
			"install with: brew tap facebook/fb && brew install idb-companion")
	}

	elements, err := client.DescribeAll(ctx, device.UDID)
	if err != nil {
		return outputError(globals, "SCREEN_MAP_FAILED", err.Error())
	}

	issues := auditElements(elements)

	if globals.JSON {
		return json.NewEncoder(globals.Stdout).Encode(map[string]any{
			"type":     "audit",
			"udid":     device.UDID,
			"elements": len(elements),
			"issues":   issues,
		})
	}

	if len(issues) == 0 {
		if !globals.Quiet {
			fmt.Fprintf(globals.Stdout, "No accessibility issues found across %d elements on %s\n",
				len(elements), device.Name)
		}
		return nil
	}

	errors := 0
	for _, issue := range issues {
		if issue.Severity == "error" {
			errors++
		}
		fmt.Fprintf(globals.Stdout, "%-7s %-16s %s: %s\n", issue.Severity, issue.Rule, issue.Element, issue.Detail)
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "\n%d issue(s) (%d errors) across %d elements on %s\n",
			len(issues), errors, len(elements), device.Name)
	}

	if errors > 0 || (c.Strict && len(issues) > 0) {
		return fmt.Errorf("accessibility audit found %d issue(s)", len(issues))
	}
	return nil
}

// auditElements applies the screen-level accessibility rules: interactive
// elements need labels, tap targets meet the HIG minimum, and labels are
// unambiguous.
func auditElements(elements []domain.Element) []auditIssue {
	var issues []auditIssue

	labelCount := map[string]int{}
	for _, e := range elements {
		if interactiveTypes[e.Type] && e.Visible && e.Label != "" {
			labelCount[e.Label]++
		}
	}

	reportedDup := map[string]bool{}
	for _, e := range elements {
		if !e.Visible || !interactiveTypes[e.Type] {
			continue
		}

		if e.Label == "" && e.Identifier == "" {
			issues = append(issues, auditIssue{
				Severity: "error",
				Rule:     "missing-label",
				Element:  e.String(),
				Detail:   "interactive element has no accessibility label or identifier",
			})
		}

		if e.Frame.Width > 0 && e.Frame.Height > 0 &&
			(e.Frame.Width < minTapTarget || e.Frame.Height < minTapTarget) {
			issues = append(issues, auditIssue{
				Severity: "warning",
				Rule:     "small-tap-target",
				Element:  e.String(),
				Detail: fmt.Sprintf("tap target is %.0fx%.0f points, minimum is %.0fx%.0f",
					e.Frame.Width, e.Frame.Height, minTapTarget, minTapTarget),
			})
		}

		if e.Label != "" && labelCount[e.Label] > 1 && !reportedDup[e.Label] {
			reportedDup[e.Label] = true
			issues = append(issues, auditIssue{
				Severity: "warning",
				Rule:     "duplicate-label",
				Element:  e.String(),
				Detail: fmt.Sprintf("%d interactive elements share the label %q",
					labelCount[e.Label], e.Label),
			})
		}
	}
	return issues
}
