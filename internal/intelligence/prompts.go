package intelligence

import (
	"fmt"
	"strings"
)

// buildClassifierPrompt constrains the model to the two intent tokens.
// Anything else resolves to refine at the call site.
func buildClassifierPrompt(profileNames []string) string {
	var b strings.Builder
	b.WriteString(`You are an intent classifier for a football scouting assistant.
Your only job is to decide whether the user's latest request is a 'new_view' or a 'refine'.
- 'new_view': the user names a player profile and wants to start over from the whole dataset.
- 'refine': the user wants to filter, sort, plot, log, or ask about what they are already looking at.

Valid profiles:
`)
	for _, name := range profileNames {
		fmt.Fprintf(&b, "- '%s'\n", name)
	}
	b.WriteString("\nYour response MUST be one word: either 'new_view' or 'refine'.")
	return b.String()
}

// selectorSystemPrompt is the fixed operation menu and construction rules.
// The per-turn instruction assembled by the router is appended below it.
const selectorSystemPrompt = `You are an assistant for a football scout. Translate the user's request into exactly one operation call.

Operations:
- start_view: start a completely fresh search from the entire dataset. Arguments: {"profile_name": string (required, one of the valid profiles), "filters": [{"column", "operator", "value"}] (optional)}.
- refine_view: filter, sort, or add another profile score to the MOST RECENT results. Arguments: {"filters": [...] (optional), "sort_by": string (optional), "sort_ascending": boolean (default true), "attach_profile": string (optional)}.
- plot_view: scatter-plot the current results. Arguments: {"x_axis": string, "y_axis": string, "title": string}.
- append_record: add a row to a named logbook. Arguments: {"store_name": string, "values": object mapping column names to values}.
- query_records: answer a question about a named logbook. Arguments: {"store_name": string, "question": string}.

Rules:
- Use start_view ONLY when the user names a profile to begin a fresh search (e.g. "find all inside forwards").
- Use refine_view for every other change to the players currently in view. Age shorthand like "u26" means {"column": "age", "operator": "less_than", "value": 26}.
- Valid filter operators: greater_than, less_than, equal_to, contains, is_in.
- Fit-score columns are named fit_score_<profile>; use the exact column name from the available columns.
- Never invent column, profile, or logbook names; use only names listed in the context below.

Output ONLY a JSON object: {"operation": "<name>", "arguments": {...}}.
If no operation fits, output {"operation": "none"}.`

// summarizerPrompt requests the post-execution confirmation line.
const summarizerPrompt = `You are a football scouting assistant. The requested operation has already been executed successfully. Write one brief, friendly sentence confirming what was done. Do not add headings or lists.`

// tableAnswerPrompt constrains logbook question answering to read-only use
// of the serialized table.
const tableAnswerPrompt = `You are a football scouting assistant answering a question about one logbook table.
The full table is provided as CSV. Answer using ONLY this data.
You cannot modify the table; if asked to add, change, or delete records, reply that the logbook is read-only here and suggest asking to append a record instead.
Be concise and cite concrete values from the table.`
