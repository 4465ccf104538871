package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/dotfiles/pkg/commands/status"
	"github.com/arthur-debert/dotfiles/pkg/linkstate"
	"github.com/arthur-debert/dotfiles/pkg/planner"
	"github.com/arthur-debert/dotfiles/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatus() *status.Result {
	return &status.Result{
		Rows: []status.Row{
			{Path: ".gitconfig", Entry: walker.Mapped, Link: linkstate.State{Kind: linkstate.ConflictNoLink, Path: "/home/u/.gitconfig"}},
			{Path: ".missing", Entry: walker.Invalid, Link: linkstate.State{Kind: linkstate.Invalid, Path: "/repo/.missing"}},
			{Path: ".vimrc", Entry: walker.Mapped, Link: linkstate.State{Kind: linkstate.Linked}},
			{Path: ".zshrc", Entry: walker.Mapped, Link: linkstate.State{Kind: linkstate.ConflictWrongTarget, Path: "/elsewhere"}},
			{Path: "README", Entry: walker.Unmapped, Link: linkstate.State{Kind: linkstate.Unmapped}},
			{Path: "bin", Entry: walker.Mapped, Link: linkstate.State{Kind: linkstate.Unlinked}},
		},
	}
}

func TestRenderStatusPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModePlain).RenderStatus(sampleStatus()))

	want := "" +
		"CONFLICT  .gitconfig \"/home/u/.gitconfig\" is not a symlink\n" +
		"INVALID   .missing \"/repo/.missing\" does not exist in the repository\n" +
		"LINKED    .vimrc\n" +
		"CONFLICT  .zshrc points to \"/elsewhere\" instead\n" +
		"UNMAPPED  README\n" +
		"UNLINKED  bin\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderStatusEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModePlain).RenderStatus(&status.Result{}))
	assert.Equal(t, MsgNothingShown+"\n", buf.String())
}

func TestRenderStatusJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeJSON).RenderStatus(sampleStatus()))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 6)
	assert.Equal(t, map[string]string{
		"path":   ".zshrc",
		"entry":  "mapped",
		"state":  "conflict_wrong_target",
		"detail": "/elsewhere",
	}, rows[3])
}

func TestRenderStatusStyledKeepsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeStyled).RenderStatus(sampleStatus()))
	assert.Contains(t, buf.String(), "LINKED")
	assert.Contains(t, buf.String(), ".vimrc")
}

func TestRenderPlan(t *testing.T) {
	plan := &planner.Plan{
		Path:    ".vimrc",
		Skipped: []string{planner.SkipAlreadyMapped},
		Changes: []planner.Change{
			{Kind: planner.MoveFile, From: "/h/.vimrc", To: "/d/.vimrc"},
			{Kind: planner.CreateSymlink, From: "/h/.vimrc", To: "/d/.vimrc"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModePlain).RenderPlan(plan))

	want := "" +
		"Following steps can be skipped:\n" +
		"- This path is already mapped, no need to update config.\n" +
		"Following things will be done:\n" +
		"- moving /h/.vimrc -> /d/.vimrc\n" +
		"- creating symlink /h/.vimrc -> /d/.vimrc\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderEmptyPlan(t *testing.T) {
	plan := &planner.Plan{
		Path:    ".vimrc",
		Skipped: []string{planner.SkipAlreadyMapped, planner.SkipAlreadyLinked},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModePlain).RenderPlan(plan))
	assert.Contains(t, buf.String(), "- no symlink will be created, paths are already linked.\n")
	assert.Contains(t, buf.String(), MsgNothingToDo+"\n")
}

func TestRenderPlanJSON(t *testing.T) {
	plan := &planner.Plan{
		Path:    ".vimrc",
		Changes: []planner.Change{{Kind: planner.AddMapping, Path: ".vimrc"}},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeJSON).RenderPlan(plan))

	var doc planDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, ".vimrc", doc.Path)
	assert.Empty(t, doc.Skipped)
	require.Len(t, doc.Changes, 1)
	assert.Equal(t, "add_mapping", doc.Changes[0].Kind)
	assert.Equal(t, "adding .vimrc to mappings in config file", doc.Changes[0].Description)
}

func TestRenderMessageSilentInJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, ModeJSON).RenderMessage("hello"))
	require.NoError(t, New(&buf, ModeJSON).RenderDryRun())
	assert.Empty(t, buf.String())
}
