package rights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/advert-board/internal/model"
)

func defaultTable() *Table { return NewTable(DefaultSchema()) }

func TestEvaluateDenyByDefault(t *testing.T) {
	table := NewTable(Schema{})
	actor := &model.User{ID: 1, Role: model.RoleUser}

	err := table.Evaluate(actor, "advertisement", nil, Request{Read: true})
	assert.ErrorIs(t, err, ErrForbidden)

	// Same missing pair without credentials classifies as unauthenticated.
	err = table.Evaluate(nil, "advertisement", nil, Request{Read: true})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestEvaluateUnknownKindDenies(t *testing.T) {
	actor := &model.User{ID: 1, Role: model.RoleUser}
	err := defaultTable().Evaluate(actor, "reservation", nil, Request{Read: true})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEvaluateOwnerOnly(t *testing.T) {
	table := defaultTable()
	advert := model.Advertisement{ID: 10, UserID: 1}

	owner := &model.User{ID: 1, Role: model.RoleUser}
	require.NoError(t, table.Evaluate(owner, "advertisement", advert, Request{OwnerOnly: true, Update: true}))

	stranger := &model.User{ID: 2, Role: model.RoleUser}
	err := table.Evaluate(stranger, "advertisement", advert, Request{OwnerOnly: true, Update: true})
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin rights carry owner_only=false, so ownership is not required.
	admin := &model.User{ID: 99, Role: model.RoleAdmin}
	assert.NoError(t, table.Evaluate(admin, "advertisement", advert, Request{OwnerOnly: true, Update: true}))
}

func TestEvaluateOwnershipBeatsActionFlag(t *testing.T) {
	// Even with every action flag granted, a non-owner is rejected when the
	// ownership gate applies.
	table := NewTable(Schema{
		model.RoleUser: {
			"advertisement": {OwnerOnly: true, Read: true, Create: true, Update: true, Delete: true},
		},
	})
	advert := model.Advertisement{ID: 10, UserID: 1}
	stranger := &model.User{ID: 2, Role: model.RoleUser}

	err := table.Evaluate(stranger, "advertisement", advert, Request{OwnerOnly: true, Delete: true})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEvaluateActionFlagGate(t *testing.T) {
	table := NewTable(Schema{
		model.RoleUser: {
			"advertisement": {Read: true}, // no update
		},
	})
	actor := &model.User{ID: 1, Role: model.RoleUser}

	assert.NoError(t, table.Evaluate(actor, "advertisement", nil, Request{Read: true}))
	assert.ErrorIs(t, table.Evaluate(actor, "advertisement", nil, Request{Update: true}), ErrForbidden)

	// Not requesting an action never trips its stored flag.
	assert.NoError(t, table.Evaluate(actor, "advertisement", nil, Request{}))
}

func TestEvaluateAnonStaticRights(t *testing.T) {
	table := defaultTable()

	assert.NoError(t, table.Evaluate(nil, "advertisement", nil, Request{Read: true}))
	assert.NoError(t, table.Evaluate(nil, "user", nil, Request{Create: true}))

	err := table.Evaluate(nil, "advertisement", nil, Request{Create: true})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestEvaluateMissingTargetPanics(t *testing.T) {
	actor := &model.User{ID: 1, Role: model.RoleUser}
	require.Panics(t, func() {
		_ = defaultTable().Evaluate(actor, "advertisement", nil, Request{OwnerOnly: true, Update: true})
	})
}
