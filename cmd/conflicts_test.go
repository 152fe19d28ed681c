package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

func TestPrintConflicts(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printConflicts(&buf, []*domain.ConflictRecord{
		{
			ID:              4,
			PairKey:         domain.NewPairKey("bk-1", "bk-2"),
			Severity:        domain.SeverityCritical,
			Reason:          "double-booked at the same venue",
			Recommendations: []string{"contact one client to reschedule or decline"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "bk-1|bk-2")
	assert.Contains(t, out, "- contact one client to reschedule or decline")
	assert.Contains(t, out, "block confirmation")

	buf.Reset()
	printConflicts(&buf, nil)
	assert.Equal(t, "no unresolved conflicts\n", buf.String())
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "conflicts"}, names)

	flag := root.PersistentFlags().Lookup("config")
	if assert.NotNil(t, flag) {
		assert.Equal(t, defaultConfigPath, flag.DefValue)
	}
}
