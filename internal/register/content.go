package register

// IOSSim is the registration descriptor for the simulator toolkit binary
var IOSSim = Tool{
	Name:         "ios-sim",
	SkillName:    "ios-sim",
	WorkflowFile: "ios-simulator-skill.md",
	Skill:        iosSimSkill,
	Guide:        iosSimGuide,
	Workflow:     iosSimWorkflow,
}

// Pipe is the registration descriptor for the extraction binary
var Pipe = Tool{
	Name:         "pipe",
	SkillName:    "pipe",
	WorkflowFile: "pipe-extraction.md",
	Skill:        pipeSkill,
	Workflow:     pipeWorkflow,
}

const iosSimSkill = `---
name: ios-sim
description: Build, test, and automate iOS apps with semantic navigation. Use when asked about iOS simulators, accessibility testing, or app automation.
---

# iOS Simulator Toolkit

Simulator automation for AI agents: device lifecycle, app control, semantic
UI navigation, permissions, and log monitoring through one binary.

## Quick Start

` + "```bash" + `
# 1. Check environment
ios-sim health

# 2. Launch app
ios-sim app --launch com.example.app

# 3. Map screen to see elements
ios-sim screen

# 4. Tap button by text
ios-sim navigate --find-text "Login" --tap

# 5. Enter text
ios-sim navigate --find-type TextField --enter-text "user@example.com"
` + "```" + `

## Command Categories

### Device Lifecycle
| Command | Description |
|---------|-------------|
| ios-sim list | List simulators (--booted, --type iphone) |
| ios-sim boot | Boot simulators (--udid, --all, --type) |
| ios-sim shutdown | Shutdown simulators |
| ios-sim create | Create a new simulator, emits its UDID |
| ios-sim delete | Delete simulators (--yes required) |
| ios-sim erase | Factory reset simulators (--yes required) |

### Navigation & Interaction
| Command | Description |
|---------|-------------|
| ios-sim screen | Analyze current screen elements |
| ios-sim navigate | Find and interact with elements semantically |
| ios-sim gesture | Swipes, scrolls, long press |
| ios-sim keyboard | Text input and hardware buttons |
| ios-sim app | App lifecycle (launch, terminate, install) |

### Testing & Device State
| Command | Description |
|---------|-------------|
| ios-sim privacy | Grant/revoke app permissions |
| ios-sim push | Send test push notifications |
| ios-sim statusbar | Override status bar appearance |
| ios-sim clipboard | Clipboard management |
| ios-sim screenshot | Capture and diff screenshots |
| ios-sim state | Debugging snapshots |
| ios-sim logs | Query and follow simulator logs |
| ios-sim health | Environment verification |
| ios-sim record | Record steps into test documentation |

## Common Patterns

- Auto-detection: commands use the single booted simulator when --udid is
  not provided.
- Device names work anywhere a UDID does ("iPhone 16 Pro").
- Batch operations: --all or --type iphone select device sets.
- Output: concise text by default, --verbose for detail, --json for CI/CD.

## Safe Commands (Read-Only)

` + "```bash" + `
ios-sim list
ios-sim health
ios-sim screen
ios-sim apps
ios-sim state --bundle-id com.example.app
` + "```" + `
`

const iosSimGuide = `# Working with ios-sim

Guidelines for using the simulator toolkit from a coding agent.

## Before interacting

- Run ` + "`ios-sim health`" + ` once per session. It reports missing tools
  (Xcode, idb) with install hints, so failures later are not mysterious.
- Use ` + "`ios-sim screen`" + ` before tapping anything. Element labels and
  types from the accessibility tree are the ground truth, not pixel
  coordinates.

## Conventions

- Prefer semantic navigation (` + "`navigate --find-text`" + `) over raw
  coordinates (` + "`gesture --tap-x/--tap-y`" + `); it survives layout changes.
- Pass --json in scripts and CI. Text output is for humans and may change.
- Device names work wherever a UDID does. Omit --udid entirely when one
  simulator is booted.
- delete and erase are destructive and require --yes in scripts.

## Verifying outcomes

- After navigation, re-run ` + "`ios-sim screen`" + ` to confirm the screen
  changed as expected.
- ` + "`ios-sim logs --bundle <id> --since 1m`" + ` shows what the app logged
  during the interaction.
- ` + "`ios-sim audit`" + ` catches missing accessibility labels that make
  future navigation brittle.
`

const iosSimWorkflow = `---
description: Build, test, and automate iOS apps with semantic navigation. Use when asked about iOS simulators, accessibility testing, or app automation.
---

` + iosSimWorkflowBody

const iosSimWorkflowBody = `# iOS Simulator Toolkit

Automation for iOS app testing. One binary, agent-friendly output.

## Quick Start

` + "```bash" + `
ios-sim health                                      # check environment
ios-sim app --launch com.example.app                # launch app
ios-sim screen                                      # map screen elements
ios-sim navigate --find-text "Login" --tap          # tap by text
ios-sim navigate --find-type TextField --enter-text "user@example.com"
` + "```" + `

## Example: Login Flow Test

` + "```bash" + `
ios-sim app --launch com.example.app
ios-sim screen
ios-sim navigate --find-type TextField --index 0 --enter-text "user@test.com"
ios-sim navigate --find-type SecureTextField --enter-text "password123"
ios-sim navigate --find-text "Login" --tap
ios-sim audit                                       # accessibility check
` + "```" + `

## Example: Permission Testing

` + "```bash" + `
ios-sim privacy --bundle-id com.example.app --grant camera,location
# ... exercise the app ...
ios-sim privacy --bundle-id com.example.app --revoke camera,location
` + "```" + `

## Example: CI/CD Device Lifecycle

` + "```bash" + `
UDID=$(ios-sim create --device "iPhone 16 Pro" --json | jq -r '.detail.udid')
ios-sim build --project MyApp.xcodeproj --scheme MyApp --test --udid "$UDID"
ios-sim delete --udid "$UDID" --yes
` + "```" + `

## Requirements

- macOS 12+, Xcode Command Line Tools
- idb (optional, for interactive navigation)

## Registration

` + "```bash" + `
ios-sim --register agent   # Antigravity/Gemini
ios-sim --register code    # Claude Code
ios-sim --register help    # Show documentation
ios-sim --register         # Manual copy-paste
` + "```" + `
`

const pipeSkill = `---
name: pipe
description: Extract readable content from files, directories, URLs, and databases. Use when asked to summarize codebases or pull text out of mixed sources.
---

` + pipeBody

const pipeBody = `# pipe - Content Extraction

One positional source, three output formats.

` + "```bash" + `
pipe README.md                          # single file
pipe ./src --include_patterns "*.go"    # directory with globs
pipe https://example.com/article        # URL, readability-extracted
pipe app.db --db "SELECT * FROM users"  # sqlite query
pipe ./src --options '{"code_relations": true, "code_nf": 10}'
` + "```" + `

Flags:
- -f md|text|json selects the output format (markdown default)
- --text_only strips markdown structure (mode "raw" keeps code fences)
- --include_patterns / --include_regex narrow directory walks
- --options carries extraction tunables as JSON
- note: glob patterns restrict the files the code-relations graph can see,
  weakening its ranking; prefer running relations over the whole tree
`

const pipeWorkflow = `---
description: Extract readable content from files, directories, URLs, and databases for downstream analysis.
---

` + pipeBody
