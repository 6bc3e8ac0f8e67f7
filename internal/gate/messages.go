package gate

// gitBlockMessage is printed on every blocked git mutation, in all modes.
const gitBlockMessage = `MANDATORY COMPLIANCE — DO NOT ATTEMPT TO WORK AROUND THIS BLOCK.

Git mutation commands (commit, push, merge, rebase, reset, etc.) are PERMANENTLY FORBIDDEN. The human performs all git write operations.

You MUST NOT:
  - Retry this command
  - Rewrite the command to achieve the same effect
  - Use a different tool to perform git mutations
  - Ask the user if you should bypass this restriction

You MUST instead:
  - Inform the user that this is a manual step for them
  - Continue with your other work

Read-only git commands (status, diff, log, show, branch) are allowed.`

// strictBlockMessage is printed when strict mode denies for a missing work item.
const strictBlockMessage = `MANDATORY COMPLIANCE — DO NOT ATTEMPT TO WORK AROUND THIS BLOCK.

You cannot Write, Edit, or run Bash commands without an active chainlink issue. This is a hard requirement enforced by the project, not a suggestion.

You MUST NOT:
  - Retry the same tool call hoping it will work
  - Try alternative tools or approaches to bypass this check
  - Proceed without creating an issue first
  - Tell the user the hook is preventing you from working

You MUST do exactly this, right now, before anything else:

  chainlink quick "<describe what you are about to do>" -p <priority> -l <label>

This single command creates an issue AND sets it as your active work item. After running it, your tool calls will succeed.

If an issue already exists for this work, use:
  chainlink list -s open
  chainlink session work <id>

This is how the project tracks work. Comply, then continue.`

// normalReminderMessage is printed (without blocking) in normal mode.
const normalReminderMessage = `Reminder: No active chainlink issue. You should create one before making changes.

  chainlink quick "<describe what you are about to do>" -p <priority> -l <label>

Or pick an existing issue:
  chainlink list -s open
  chainlink session work <id>`
