package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/view"
)

func analystOn(boards *mockBoardRepo, boardID, userID uint64) {
	boards.On("RoleMap", boardID).Return(map[uint64]domain.Role{userID: domain.RoleAnalyst}, nil)
}

func TestDealCreate_DefaultsToSourced(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	hub := new(mockHub)

	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)
	analystOn(boards, 1, 7)

	var activity *domain.ActivityRecord
	deals.On("CreateWithActivity", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Deal).ID = 11
		activity = args.Get(1).(*domain.ActivityRecord)
	}).Return(nil)
	deals.On("ListByBoard", uint64(1)).Return([]domain.Deal{{ID: 11, Name: "Acme"}}, nil)
	hub.On("PublishBoard", uint64(1), "deal.created", mock.Anything).Return()

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), hub)

	deal, err := svc.Create(domain.Actor{ID: 7, FullName: "Jane Doe"}, &domain.CreateDealRequest{
		BoardID: 1,
		Name:    "  Acme  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", deal.Name)
	assert.Equal(t, domain.StageSourced, deal.Stage)
	assert.Equal(t, domain.StatusActive, deal.Status)
	assert.Equal(t, uint64(7), deal.OwnerID)

	require.NotNil(t, activity)
	assert.Equal(t, domain.ActionCreated, activity.ActionType)
	assert.Equal(t, "Jane Doe created deal 'Acme'", activity.Description)

	deals.AssertExpectations(t)
	hub.AssertExpectations(t)
}

func TestDealCreate_ValidatesBeforeWrite(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)
	analystOn(boards, 1, 7)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)
	actor := domain.Actor{ID: 7, FullName: "Jane Doe"}

	_, err := svc.Create(actor, &domain.CreateDealRequest{BoardID: 1, Name: "   "})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(actor, &domain.CreateDealRequest{BoardID: 1, Name: "Acme", Stage: "Limbo"})
	assert.ErrorIs(t, err, common.ErrValidation)

	// no write reached the repository
	deals.AssertNotCalled(t, "CreateWithActivity", mock.Anything, mock.Anything)
}

func TestDealCreate_PartnerDenied(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{7: domain.RolePartner}, nil)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)

	_, err := svc.Create(domain.Actor{ID: 7}, &domain.CreateDealRequest{BoardID: 1, Name: "Acme"})
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
	deals.AssertNotCalled(t, "CreateWithActivity", mock.Anything, mock.Anything)
}

func TestDealCreate_WriteFailureSurfaces(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	hub := new(mockHub)

	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)
	analystOn(boards, 1, 7)
	deals.On("CreateWithActivity", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), hub)

	_, err := svc.Create(domain.Actor{ID: 7, FullName: "Jane Doe"}, &domain.CreateDealRequest{BoardID: 1, Name: "Acme"})
	assert.EqualError(t, err, "db down")
	hub.AssertNotCalled(t, "PublishBoard", mock.Anything, mock.Anything, mock.Anything)
}

func TestDealUpdate_NoOpEmitsNothing(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	hub := new(mockHub)

	existing := &domain.Deal{ID: 11, BoardID: 1, OwnerID: 7, Name: "Acme", Stage: domain.StageScreen}
	deals.On("FindByID", uint64(11)).Return(existing, nil)
	analystOn(boards, 1, 7)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), hub)

	sameName := "Acme"
	sameStage := domain.StageScreen
	deal, err := svc.Update(domain.Actor{ID: 7, FullName: "Jane Doe"}, 11, &domain.DealPatch{
		Name:  &sameName,
		Stage: &sameStage,
	})
	require.NoError(t, err)
	assert.Equal(t, existing, deal)

	// strict no-op: nothing written, nothing broadcast
	deals.AssertNotCalled(t, "UpdateWithActivities", mock.Anything, mock.Anything)
	hub.AssertNotCalled(t, "PublishBoard", mock.Anything, mock.Anything, mock.Anything)
}

func TestDealUpdate_StageChangeEmitsOneRecord(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	hub := new(mockHub)

	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1, Name: "Acme", Stage: domain.StageSourced}, nil)
	analystOn(boards, 1, 7)

	var activities []*domain.ActivityRecord
	deals.On("UpdateWithActivities", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		activities = args.Get(1).([]*domain.ActivityRecord)
	}).Return(nil)
	deals.On("ListByBoard", uint64(1)).Return([]domain.Deal{{ID: 11, Name: "Acme", Stage: domain.StageDiligence}}, nil)
	hub.On("PublishBoard", uint64(1), "deal.updated", mock.Anything).Return()

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), hub)

	to := domain.StageDiligence
	deal, err := svc.Update(domain.Actor{ID: 7, FullName: "Jane Doe"}, 11, &domain.DealPatch{Stage: &to})
	require.NoError(t, err)
	assert.Equal(t, domain.StageDiligence, deal.Stage)

	require.Len(t, activities, 1)
	assert.Equal(t, domain.ActionStageChange, activities[0].ActionType)
	assert.Equal(t, "Jane Doe moved 'Acme' from Sourced to Diligence", activities[0].Description)
	assert.JSONEq(t, `{"from_stage":"Sourced","to_stage":"Diligence"}`, string(activities[0].Metadata))

	hub.AssertExpectations(t)
}

func TestDealUpdate_StageAndFieldsEmitBoth(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1, Name: "Acme", Stage: domain.StageSourced, Round: "Seed"}, nil)
	analystOn(boards, 1, 7)

	var activities []*domain.ActivityRecord
	deals.On("UpdateWithActivities", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		activities = args.Get(1).([]*domain.ActivityRecord)
	}).Return(nil)
	deals.On("ListByBoard", uint64(1)).Return([]domain.Deal{}, nil)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)

	to := domain.StageIC
	round := "Series A"
	_, err := svc.Update(domain.Actor{ID: 7, FullName: "Jane Doe"}, 11, &domain.DealPatch{Stage: &to, Round: &round})
	require.NoError(t, err)

	require.Len(t, activities, 2)
	assert.Equal(t, domain.ActionStageChange, activities[0].ActionType)
	assert.Equal(t, domain.ActionUpdated, activities[1].ActionType)
}

func TestDealUpdate_RejectsUnknownStage(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1, Name: "Acme", Stage: domain.StageSourced}, nil)
	analystOn(boards, 1, 7)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)

	bad := domain.Stage("Limbo")
	_, err := svc.Update(domain.Actor{ID: 7}, 11, &domain.DealPatch{Stage: &bad})
	assert.ErrorIs(t, err, common.ErrValidation)
	deals.AssertNotCalled(t, "UpdateWithActivities", mock.Anything, mock.Anything)
}

func TestDealDelete_NonMemberDenied(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	// actor 42 owns the deal but has no membership and no admin flag
	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1, OwnerID: 42}, nil)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{7: domain.RoleAdmin}, nil)
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, CreatedBy: 7}, nil)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)

	err := svc.Delete(domain.Actor{ID: 42}, 11)
	assert.ErrorIs(t, err, common.ErrNoBoardAccess)
	deals.AssertNotCalled(t, "DeleteCascade", mock.Anything)
}

func TestDealDelete_MemberNonOwnerDenied(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1, OwnerID: 7}, nil)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{5: domain.RoleAdmin}, nil)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)

	// board-admin role does not grant deletion of someone else's deal
	err := svc.Delete(domain.Actor{ID: 5}, 11)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestDealDelete_GlobalAdminCrossesMembership(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	hub := new(mockHub)

	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1, OwnerID: 7}, nil)
	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{7: domain.RoleAdmin}, nil)
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, CreatedBy: 7}, nil)
	deals.On("DeleteCascade", uint64(11)).Return(nil)
	deals.On("ListByBoard", uint64(1)).Return([]domain.Deal{}, nil)
	hub.On("PublishBoard", uint64(1), "deal.deleted", mock.Anything).Return()

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), hub)

	err := svc.Delete(domain.Actor{ID: 99, IsAdmin: true}, 11)
	require.NoError(t, err)
	deals.AssertExpectations(t)
	hub.AssertExpectations(t)
}

func TestDealListByBoard_SeedsView(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1}, nil)
	analystOn(boards, 1, 7)
	deals.On("ListByBoard", uint64(1)).Return([]domain.Deal{{ID: 11, Name: "Acme"}}, nil).Once()

	views := view.NewRegistry()
	svc := NewDealService(deals, boards, NewAccessService(boards), views, nil)
	actor := domain.Actor{ID: 7}

	first, err := svc.ListByBoard(actor, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// second call serves the seeded view, not the store
	second, err := svc.ListByBoard(actor, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	deals.AssertExpectations(t)
}

func TestDealListVisible(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)

	boards.On("ListVisible", uint64(7)).Return([]*domain.Board{{ID: 1}, {ID: 3}}, nil)
	deals.On("ListByBoards", []uint64{1, 3}).Return([]domain.Deal{{ID: 11}, {ID: 12}}, nil)

	svc := NewDealService(deals, boards, NewAccessService(boards), view.NewRegistry(), nil)

	out, err := svc.ListVisible(domain.Actor{ID: 7})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
