package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
)

type mockBoardRepo struct {
	mock.Mock
}

func (m *mockBoardRepo) Create(board *domain.Board, creatorMembership *domain.Membership) error {
	args := m.Called(board, creatorMembership)
	return args.Error(0)
}

func (m *mockBoardRepo) FindByID(id uint64) (*domain.Board, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *mockBoardRepo) FindDefault() (*domain.Board, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

func (m *mockBoardRepo) ListVisible(userID uint64) ([]*domain.Board, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Board), args.Error(1)
}

func (m *mockBoardRepo) Update(board *domain.Board) error {
	args := m.Called(board)
	return args.Error(0)
}

func (m *mockBoardRepo) DeleteCascade(boardID uint64) error {
	args := m.Called(boardID)
	return args.Error(0)
}

func (m *mockBoardRepo) UpsertMember(membership *domain.Membership) error {
	args := m.Called(membership)
	return args.Error(0)
}

func (m *mockBoardRepo) RemoveMember(boardID, userID uint64) error {
	args := m.Called(boardID, userID)
	return args.Error(0)
}

func (m *mockBoardRepo) ListMembers(boardID uint64) ([]domain.BoardMember, error) {
	args := m.Called(boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardMember), args.Error(1)
}

func (m *mockBoardRepo) RoleMap(boardID uint64) (map[uint64]domain.Role, error) {
	args := m.Called(boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]domain.Role), args.Error(1)
}

type mockDealRepo struct {
	mock.Mock
}

func (m *mockDealRepo) CreateWithActivity(deal *domain.Deal, activity *domain.ActivityRecord) error {
	args := m.Called(deal, activity)
	return args.Error(0)
}

func (m *mockDealRepo) FindByID(id uint64) (*domain.Deal, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *mockDealRepo) ListByBoard(boardID uint64) ([]domain.Deal, error) {
	args := m.Called(boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *mockDealRepo) ListByBoards(boardIDs []uint64) ([]domain.Deal, error) {
	args := m.Called(boardIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *mockDealRepo) UpdateWithActivities(deal *domain.Deal, activities []*domain.ActivityRecord) error {
	args := m.Called(deal, activities)
	return args.Error(0)
}

func (m *mockDealRepo) DeleteCascade(dealID uint64) error {
	args := m.Called(dealID)
	return args.Error(0)
}

type mockMemoRepo struct {
	mock.Mock
}

func (m *mockMemoRepo) AppendWithActivity(version *domain.MemoVersion, activity *domain.ActivityRecord) error {
	args := m.Called(version, activity)
	return args.Error(0)
}

func (m *mockMemoRepo) FindCurrent(dealID uint64) (*domain.MemoVersion, error) {
	args := m.Called(dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemoVersion), args.Error(1)
}

func (m *mockMemoRepo) FindByDealAndVersion(dealID uint64, version uint) (*domain.MemoVersion, error) {
	args := m.Called(dealID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemoVersion), args.Error(1)
}

func (m *mockMemoRepo) ListByDeal(dealID uint64) ([]*domain.MemoVersion, error) {
	args := m.Called(dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MemoVersion), args.Error(1)
}

func (m *mockMemoRepo) NextVersion(dealID uint64) (uint, error) {
	args := m.Called(dealID)
	return args.Get(0).(uint), args.Error(1)
}

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) Create(activity *domain.ActivityRecord) error {
	args := m.Called(activity)
	return args.Error(0)
}

func (m *mockActivityRepo) ListByDeal(dealID uint64) ([]domain.ActivityRecord, error) {
	args := m.Called(dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecord), args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) CreateWithActivity(comment *domain.Comment, activity *domain.ActivityRecord) error {
	args := m.Called(comment, activity)
	return args.Error(0)
}

func (m *mockCommentRepo) ListByDeal(dealID uint64) ([]domain.Comment, error) {
	args := m.Called(dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

type mockVoteRepo struct {
	mock.Mock
}

func (m *mockVoteRepo) UpsertWithActivity(vote *domain.Vote, activity *domain.ActivityRecord) error {
	args := m.Called(vote, activity)
	return args.Error(0)
}

func (m *mockVoteRepo) ListByDeal(dealID uint64) ([]domain.Vote, error) {
	args := m.Called(dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vote), args.Error(1)
}

func (m *mockVoteRepo) FindByDealAndUser(dealID, userID uint64) (*domain.Vote, error) {
	args := m.Called(dealID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List() ([]*domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// mockHub records board publishes for assertion
type mockHub struct {
	mock.Mock
}

func (m *mockHub) PublishBoard(boardID uint64, eventType string, payload interface{}) {
	m.Called(boardID, eventType, payload)
}
