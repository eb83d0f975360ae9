package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/guardpatch/internal/domain"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

func TestViewCmd_UsesConfiguredReportsDirByDefault(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.On("View", mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path(".guardpatch-reports") && args.Last == 0
	})).Return(nil)

	cmd, _ := newTestRootCmd(newViewCmd())
	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.On("View", mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path("./reports-dir") && args.Last == 3
	})).Return(nil)

	cmd, _ := newTestRootCmd(newViewCmd())
	cmd.SetArgs([]string{"--output", "./reports-dir", "view", "--last", "3"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	useMockWorkflow(t)

	cmd, _ := newTestRootCmd(newViewCmd())
	cmd.SetArgs([]string{"view", "./custom-reports"})
	require.Error(t, cmd.Execute())
}
