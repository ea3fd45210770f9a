package commands_test

import (
	"strings"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConstructors_RejectZeroIDs(t *testing.T) {
	var zero kernel.UUID
	id := kernel.NewUUID()

	testCases := []struct {
		name string
		fn   func() error
	}{
		{"create load", func() error { _, err := commands.NewCreateLoadCommand(zero, load.Changes{}); return err }},
		{"advance", func() error { _, err := commands.NewAdvanceStatusCommand(zero); return err }},
		{"delete stop", func() error { _, err := commands.NewDeleteStopCommand(id, zero); return err }},
		{"reconcile stops", func() error { _, err := commands.NewReconcileStopsCommand(zero); return err }},
		{"delete other pay", func() error { _, err := commands.NewDeleteOtherPayCommand(zero, id); return err }},
		{"select unit", func() error { _, err := commands.NewSelectUnitCommand(id, zero); return err }},
		{"clear unit", func() error { _, err := commands.NewClearUnitCommand(zero); return err }},
		{"edit message", func() error { _, err := commands.NewEditMessageCommand(id, zero, nil); return err }},
		{"create unit", func() error { _, err := commands.NewCreateUnitCommand(zero, "U-1", nil); return err }},
		{"release", func() error { _, err := commands.NewReleaseResourceCommand(zero, fleet.KindTruck); return err }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.fn(), errs.ErrValueIsRequired)
		})
	}
}

func TestNewAppendMessageCommand(t *testing.T) {
	loadID, msgID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("file without text", func(t *testing.T) {
		cmd, err := commands.NewAppendMessageCommand(loadID, msgID, "u-1", nil,
			&commands.FileUpload{Name: "a.png", Content: strings.NewReader("x"), Size: 1})

		require.NoError(t, err)
		assert.Nil(t, cmd.Text())
		require.NoError(t, cmd.Validate())
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := commands.NewAppendMessageCommand(loadID, msgID, " ", ptr("hi"), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("file without name", func(t *testing.T) {
		_, err := commands.NewAppendMessageCommand(loadID, msgID, "u-1", nil,
			&commands.FileUpload{Content: strings.NewReader("x")})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewAssignResourceCommand_RejectsUnknownKind(t *testing.T) {
	_, err := commands.NewAssignResourceCommand(kernel.NewUUID(), fleet.ResourceKind("forklift"), kernel.NewUUID(), false)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRegisterCommands_ValidateRecords(t *testing.T) {
	_, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewRegisterTruckCommand(kernel.NewUUID(), "T-1")
	require.NoError(t, err)
	assert.Equal(t, fleet.KindTruck, cmd.Kind())
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	var (
		update commands.UpdateLoadCommand
		status commands.ChangeStatusCommand
		attach commands.AttachDocumentCommand
	)

	require.ErrorIs(t, update.Validate(), commands.ErrUpdateLoadCommandIsNotConstructed)
	require.ErrorIs(t, status.Validate(), commands.ErrChangeStatusCommandIsNotConstructed)
	require.ErrorIs(t, attach.Validate(), commands.ErrAttachDocumentCommandIsNotConstructed)
}
