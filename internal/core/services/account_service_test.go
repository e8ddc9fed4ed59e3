package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/core/services"
	"github.com/SscSPs/wallet_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestGetAccount_Existing() {
	ctx := context.Background()
	expected := &domain.Account{AccountID: "acct-1", Balance: decimal.NewFromInt(42)}
	suite.mockRepo.On("FindAccountByID", ctx, "acct-1").Return(expected, nil).Once()

	account, err := suite.service.GetAccount(ctx, "acct-1")

	suite.NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccount_OpensOnFirstUse() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "acct-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == "acct-2" && a.Balance.IsZero() && !a.HasPin()
	})).Return(nil).Once()

	account, err := suite.service.GetAccount(ctx, "acct-2")

	suite.Require().NoError(err)
	suite.Equal("acct-2", account.AccountID)
	suite.True(account.Balance.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_ConcurrentOpenRereads() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: "acct-3", Balance: decimal.NewFromInt(5)}
	suite.mockRepo.On("FindAccountByID", ctx, "acct-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindAccountByID", ctx, "acct-3").Return(existing, nil).Once()

	account, err := suite.service.GetAccount(ctx, "acct-3")

	suite.NoError(err)
	suite.Equal(existing, account)
}

func (suite *AccountServiceTestSuite) TestGetAccount_RepoError() {
	ctx := context.Background()
	dbErr := errors.New("db down")
	suite.mockRepo.On("FindAccountByID", ctx, "acct-4").Return(nil, dbErr).Once()

	account, err := suite.service.GetAccount(ctx, "acct-4")

	suite.Nil(account)
	suite.ErrorIs(err, dbErr)
}

func (suite *AccountServiceTestSuite) TestGetAccount_EmptyID() {
	_, err := suite.service.GetAccount(context.Background(), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestSetPin_StoresHash() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "acct-1").Return(&domain.Account{AccountID: "acct-1"}, nil).Once()
	suite.mockRepo.On("UpdateAccountPin", ctx, "acct-1",
		mock.MatchedBy(func(hash string) bool { return utils.CheckPinHash("4321", hash) }),
		mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	err := suite.service.SetPin(ctx, "acct-1", "4321")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSetPin_RejectsMalformed() {
	for _, pin := range []string{"", "123", "12345", "12a4"} {
		err := suite.service.SetPin(context.Background(), "acct-1", pin)
		suite.ErrorIs(err, apperrors.ErrValidation, "pin %q", pin)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccountPin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestVerifyPin() {
	ctx := context.Background()
	hash, err := utils.HashPin("1234")
	suite.Require().NoError(err)
	suite.mockRepo.On("FindAccountByID", ctx, "acct-1").
		Return(&domain.Account{AccountID: "acct-1", PinHash: hash, AuditFields: domain.AuditFields{CreatedAt: time.Now()}}, nil)

	suite.NoError(suite.service.VerifyPin(ctx, "acct-1", "1234"))
	suite.ErrorIs(suite.service.VerifyPin(ctx, "acct-1", "0000"), apperrors.ErrUnauthorized)
	suite.ErrorIs(suite.service.VerifyPin(ctx, "acct-1", ""), apperrors.ErrUnauthorized)
}

func (suite *AccountServiceTestSuite) TestVerifyPin_NoPinSet() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "acct-5").Return(&domain.Account{AccountID: "acct-5"}, nil).Once()

	err := suite.service.VerifyPin(ctx, "acct-5", "1234")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
