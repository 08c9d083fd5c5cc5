package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
)

func TestAccessResolve_MemberRole(t *testing.T) {
	boards := new(mockBoardRepo)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{
		7: domain.RoleAnalyst,
		8: domain.RoleNone,
	}, nil)

	svc := NewAccessService(boards)

	role, isMember, err := svc.Resolve(1, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAnalyst, role)
	assert.True(t, isMember)

	// role-less membership still counts as a member
	role, isMember, err = svc.Resolve(1, 8)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, role)
	assert.True(t, isMember)

	boards.AssertExpectations(t)
}

func TestAccessResolve_CreatorFallback(t *testing.T) {
	boards := new(mockBoardRepo)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{}, nil)
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, CreatedBy: 9}, nil)

	svc := NewAccessService(boards)

	role, isMember, err := svc.Resolve(1, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
	assert.True(t, isMember)
}

func TestAccessResolve_NonMember(t *testing.T) {
	boards := new(mockBoardRepo)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{7: domain.RoleAdmin}, nil)
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, CreatedBy: 7}, nil)

	svc := NewAccessService(boards)

	role, isMember, err := svc.Resolve(1, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, role)
	assert.False(t, isMember)
}

func TestAccessAuthorize_RoleMatrix(t *testing.T) {
	svc := NewAccessService(new(mockBoardRepo))

	cases := []struct {
		name    string
		action  Action
		role    domain.Role
		allowed bool
	}{
		{"view as role-less member", ActionView, domain.RoleNone, true},
		{"view as partner", ActionView, domain.RolePartner, true},

		{"create deal as admin", ActionCreateDeal, domain.RoleAdmin, true},
		{"create deal as analyst", ActionCreateDeal, domain.RoleAnalyst, true},
		{"create deal as partner", ActionCreateDeal, domain.RolePartner, false},
		{"create deal role-less", ActionCreateDeal, domain.RoleNone, false},

		{"edit deal as analyst", ActionEditDeal, domain.RoleAnalyst, true},
		{"edit deal as partner", ActionEditDeal, domain.RolePartner, false},

		{"edit memo as analyst", ActionEditMemo, domain.RoleAnalyst, true},
		{"edit memo as partner", ActionEditMemo, domain.RolePartner, false},

		{"comment as analyst", ActionComment, domain.RoleAnalyst, true},
		{"comment as partner", ActionComment, domain.RolePartner, false},

		{"vote as partner", ActionVote, domain.RolePartner, true},
		{"vote as admin", ActionVote, domain.RoleAdmin, true},
		{"vote as analyst", ActionVote, domain.RoleAnalyst, false},

		{"manage members as admin", ActionManageMembers, domain.RoleAdmin, true},
		{"manage members as analyst", ActionManageMembers, domain.RoleAnalyst, false},
		{"manage board as partner", ActionManageBoard, domain.RolePartner, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Authorize(tc.action, tc.role, true)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, common.ErrPermissionDenied)
			}
		})
	}
}

func TestAccessAuthorize_NonMemberAlwaysDenied(t *testing.T) {
	svc := NewAccessService(new(mockBoardRepo))

	for _, action := range []Action{ActionView, ActionCreateDeal, ActionVote, ActionManageBoard} {
		err := svc.Authorize(action, domain.RoleAdmin, false)
		assert.ErrorIs(t, err, common.ErrNoBoardAccess, "action %s", action)
	}
}

func TestAccessRequire(t *testing.T) {
	boards := new(mockBoardRepo)
	boards.On("RoleMap", uint64(3)).Return(map[uint64]domain.Role{5: domain.RolePartner}, nil)

	svc := NewAccessService(boards)

	role, err := svc.Require(ActionVote, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.RolePartner, role)

	_, err = svc.Require(ActionEditDeal, 3, 5)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestAuthorizeDealDelete(t *testing.T) {
	svc := NewAccessService(new(mockBoardRepo))
	deal := &domain.Deal{ID: 10, OwnerID: 5}

	assert.NoError(t, svc.AuthorizeDealDelete(domain.Actor{ID: 5}, deal))
	assert.NoError(t, svc.AuthorizeDealDelete(domain.Actor{ID: 99, IsAdmin: true}, deal))
	assert.ErrorIs(t, svc.AuthorizeDealDelete(domain.Actor{ID: 99}, deal), common.ErrPermissionDenied)
}
