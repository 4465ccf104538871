package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/dotfiles/pkg/commands/status"
	"github.com/arthur-debert/dotfiles/pkg/linkstate"
	"github.com/arthur-debert/dotfiles/pkg/planner"
	"github.com/arthur-debert/dotfiles/pkg/ui/output/styles"
)

// Messages printed around a plan.
const (
	MsgSkippable    = "Following steps can be skipped:"
	MsgChanges      = "Following things will be done:"
	MsgNothingToDo  = "Nothing left to be done."
	MsgNothingShown = "Nothing to show: no mappings and no files in the dotfiles repository."
	MsgDryRun       = "Dry run: no changes were made."
)

const labelWidth = 10

// Mode selects how a Renderer writes.
type Mode int

const (
	ModeStyled Mode = iota
	ModePlain
	ModeJSON
)

// Renderer writes command results to an output stream.
type Renderer struct {
	w    io.Writer
	mode Mode
}

// New returns a Renderer writing to w.
func New(w io.Writer, mode Mode) *Renderer {
	return &Renderer{w: w, mode: mode}
}

// Mode returns the render mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

type statusRow struct {
	Path   string `json:"path"`
	Entry  string `json:"entry"`
	State  string `json:"state"`
	Detail string `json:"detail,omitempty"`
}

// Label returns the status label shown for a state.
func Label(kind linkstate.Kind) string {
	switch kind {
	case linkstate.Linked:
		return "LINKED"
	case linkstate.Unlinked:
		return "UNLINKED"
	case linkstate.ConflictNoLink, linkstate.ConflictWrongTarget:
		return "CONFLICT"
	case linkstate.Invalid:
		return "INVALID"
	case linkstate.Unmapped:
		return "UNMAPPED"
	}
	return "UNKNOWN"
}

// Describe returns the explanation shown next to a state, if any.
func Describe(state linkstate.State) string {
	switch state.Kind {
	case linkstate.ConflictNoLink:
		return fmt.Sprintf("%q is not a symlink", state.Path)
	case linkstate.ConflictWrongTarget:
		return fmt.Sprintf("points to %q instead", state.Path)
	case linkstate.Invalid:
		return fmt.Sprintf("%q does not exist in the repository", state.Path)
	}
	return ""
}

func styleName(kind linkstate.Kind) string {
	if kind.IsConflict() {
		return "Conflict"
	}
	switch kind {
	case linkstate.Linked:
		return "Linked"
	case linkstate.Unlinked:
		return "Unlinked"
	case linkstate.Invalid:
		return "Invalid"
	}
	return "Unmapped"
}

// RenderStatus writes one line per row.
func (r *Renderer) RenderStatus(result *status.Result) error {
	if r.mode == ModeJSON {
		rows := make([]statusRow, 0, len(result.Rows))
		for _, row := range result.Rows {
			rows = append(rows, statusRow{
				Path:   row.Path.String(),
				Entry:  row.Entry.String(),
				State:  row.Link.Kind.String(),
				Detail: row.Link.Path,
			})
		}
		return r.writeJSON(rows)
	}

	if result.IsEmpty() {
		return r.RenderMessage(MsgNothingShown)
	}

	for _, row := range result.Rows {
		label := Label(row.Link.Kind)
		path := row.Path.String()
		desc := Describe(row.Link)

		if r.mode == ModeStyled {
			label = styles.GetStyle(styleName(row.Link.Kind)).Width(labelWidth).Render(label)
			path = styles.GetStyle("FilePath").Render(path)
			if desc != "" {
				desc = styles.GetStyle("Description").Render(desc)
			}
		} else {
			label = fmt.Sprintf("%-*s", labelWidth, label)
		}

		line := label + path
		if desc != "" {
			line += " " + desc
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

type planChange struct {
	Kind        string `json:"kind"`
	Path        string `json:"path,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Description string `json:"description"`
}

type planDoc struct {
	Path    string       `json:"path"`
	Skipped []string     `json:"skipped"`
	Changes []planChange `json:"changes"`
}

// RenderPlan writes the skipped steps and the changes of plan. An empty plan
// is reported as nothing left to do.
func (r *Renderer) RenderPlan(plan *planner.Plan) error {
	if r.mode == ModeJSON {
		doc := planDoc{
			Path:    plan.Path.String(),
			Skipped: append([]string{}, plan.Skipped...),
			Changes: make([]planChange, 0, len(plan.Changes)),
		}
		for _, c := range plan.Changes {
			doc.Changes = append(doc.Changes, planChange{
				Kind:        c.Kind.String(),
				Path:        c.Path.String(),
				From:        c.From,
				To:          c.To,
				Description: c.Describe(),
			})
		}
		return r.writeJSON(doc)
	}

	if len(plan.Skipped) > 0 {
		if err := r.list(MsgSkippable, plan.Skipped); err != nil {
			return err
		}
	}
	if plan.IsEmpty() {
		return r.RenderMessage(MsgNothingToDo)
	}

	items := make([]string, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		items = append(items, c.Describe())
	}
	return r.list(MsgChanges, items)
}

func (r *Renderer) list(header string, items []string) error {
	if r.mode == ModeStyled {
		header = styles.GetStyle("Header").Render(header)
	}
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(r.w, "- %s\n", item); err != nil {
			return err
		}
	}
	return nil
}

// RenderMessage writes a single line. JSON mode stays silent so its output
// remains one document.
func (r *Renderer) RenderMessage(msg string) error {
	if r.mode == ModeJSON {
		return nil
	}
	if r.mode == ModeStyled {
		msg = styles.GetStyle("Muted").Render(msg)
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// RenderDryRun reports that nothing was changed.
func (r *Renderer) RenderDryRun() error {
	if r.mode == ModeJSON {
		return nil
	}
	msg := MsgDryRun
	if r.mode == ModeStyled {
		msg = styles.GetStyle("DryRunBanner").Render(msg)
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *Renderer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
