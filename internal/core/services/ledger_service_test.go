package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/cantordev/cantor_backend/internal/core/domain"
	portsrepo "github.com/cantordev/cantor_backend/internal/core/ports/repositories"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
	"github.com/cantordev/cantor_backend/internal/core/services"
	"github.com/cantordev/cantor_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock TradeRepository ---
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) ExecuteTrade(ctx context.Context, exec portsrepo.TradeExecution) (*domain.User, *domain.Position, *domain.LedgerEntry, error) {
	args := m.Called(ctx, exec)
	var user *domain.User
	var position *domain.Position
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		position = args.Get(1).(*domain.Position)
	}
	if args.Get(2) != nil {
		entry = args.Get(2).(*domain.LedgerEntry)
	}
	return user, position, entry, args.Error(3)
}

func (m *MockTradeRepository) FindPosition(ctx context.Context, userID string, currencyCode string) (*domain.Position, error) {
	args := m.Called(ctx, userID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Position), args.Error(1)
}

func (m *MockTradeRepository) ListPositionsByUserID(ctx context.Context, userID string) ([]domain.Position, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Position), args.Error(1)
}

func (m *MockTradeRepository) ListLedgerEntriesByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var entries []domain.LedgerEntry
	var token *string
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Lookup(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockUserRepo  *MockUserRepository
	mockTradeRepo *MockTradeRepository
	mockRates     *MockRateProvider
	service       portssvc.LedgerSvcFacade
	userID        string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockRates = new(MockRateProvider)
	suite.service = services.NewLedgerService(suite.mockUserRepo, suite.mockTradeRepo, suite.mockRates)
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) userWithBalance(balance string) *domain.User {
	return &domain.User{
		UserID:   suite.userID,
		Username: "kantor",
		Balance:  decimal.RequireFromString(balance),
	}
}

func rateFor(code, name, mid string) *domain.Rate {
	return &domain.Rate{
		CurrencyCode: code,
		CurrencyName: name,
		Mid:          decimal.RequireFromString(mid),
	}
}

// --- Purchase ---

func (suite *LedgerServiceTestSuite) TestPurchase_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("10000"), nil).Once()
	suite.mockRates.On("Lookup", ctx, "USD").Return(rateFor("USD", "dolar amerykański", "4.00"), nil).Once()

	updatedUser := suite.userWithBalance("9600")
	position := &domain.Position{
		PositionID:   uuid.NewString(),
		UserID:       suite.userID,
		CurrencyCode: "USD",
		Quantity:     100,
	}
	entry := &domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		UserID:       suite.userID,
		CurrencyCode: "USD",
		CurrencyName: "dolar amerykański",
		Quantity:     100,
		Price:        decimal.RequireFromString("4.00"),
		ExecutedAt:   time.Now().UTC(),
	}

	suite.mockTradeRepo.On("ExecuteTrade", ctx, mock.MatchedBy(func(exec portsrepo.TradeExecution) bool {
		return exec.UserID == suite.userID &&
			exec.CurrencyCode == "USD" &&
			exec.CurrencyName == "dolar amerykański" &&
			exec.BalanceDelta.Equal(decimal.RequireFromString("-400")) &&
			exec.QuantityDelta == 100 &&
			exec.Price.Equal(decimal.RequireFromString("4.00"))
	})).Return(updatedUser, position, entry, nil).Once()

	result, err := suite.service.Purchase(ctx, suite.userID, "USD", 100)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.User.Balance.Equal(decimal.RequireFromString("9600")))
	suite.Require().NotNil(result.Position)
	suite.Equal(int64(100), result.Position.Quantity)
	suite.Equal(int64(100), result.Entry.Quantity)
	suite.True(result.TradeValue.Equal(decimal.RequireFromString("400")))

	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPurchase_InsufficientFunds() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("100"), nil).Once()
	suite.mockRates.On("Lookup", ctx, "USD").Return(rateFor("USD", "dolar amerykański", "2.00"), nil).Once()

	result, err := suite.service.Purchase(ctx, suite.userID, "USD", 100)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(result)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "ExecuteTrade", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchase_ExactBalanceAllowed() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("200"), nil).Once()
	suite.mockRates.On("Lookup", ctx, "USD").Return(rateFor("USD", "dolar amerykański", "2.00"), nil).Once()

	updatedUser := suite.userWithBalance("0")
	position := &domain.Position{UserID: suite.userID, CurrencyCode: "USD", Quantity: 100}
	entry := &domain.LedgerEntry{UserID: suite.userID, CurrencyCode: "USD", Quantity: 100, Price: decimal.RequireFromString("2.00")}

	suite.mockTradeRepo.On("ExecuteTrade", ctx, mock.AnythingOfType("repositories.TradeExecution")).
		Return(updatedUser, position, entry, nil).Once()

	result, err := suite.service.Purchase(ctx, suite.userID, "USD", 100)

	suite.Require().NoError(err)
	suite.True(result.User.Balance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestPurchase_RateUnavailable() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("10000"), nil).Once()
	suite.mockRates.On("Lookup", ctx, "XXX").Return(nil, apperrors.ErrRateUnavailable).Once()

	result, err := suite.service.Purchase(ctx, suite.userID, "XXX", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.Nil(result)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "ExecuteTrade", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchase_InvalidQuantity() {
	ctx := context.Background()

	for _, qty := range []int64{0, -5} {
		result, err := suite.service.Purchase(ctx, suite.userID, "USD", qty)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(result)
	}
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPurchase_InvalidCurrencyCode() {
	ctx := context.Background()

	for _, code := range []string{"", "EU", "EURO", "E1R"} {
		result, err := suite.service.Purchase(ctx, suite.userID, code, 10)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(result)
	}
}

func (suite *LedgerServiceTestSuite) TestPurchase_NormalizesCurrencyCode() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("10000"), nil).Once()
	suite.mockRates.On("Lookup", ctx, "EUR").Return(rateFor("EUR", "euro", "4.30"), nil).Once()

	updatedUser := suite.userWithBalance("9957")
	position := &domain.Position{UserID: suite.userID, CurrencyCode: "EUR", Quantity: 10}
	entry := &domain.LedgerEntry{UserID: suite.userID, CurrencyCode: "EUR", Quantity: 10, Price: decimal.RequireFromString("4.30")}

	suite.mockTradeRepo.On("ExecuteTrade", ctx, mock.MatchedBy(func(exec portsrepo.TradeExecution) bool {
		return exec.CurrencyCode == "EUR"
	})).Return(updatedUser, position, entry, nil).Once()

	_, err := suite.service.Purchase(ctx, suite.userID, "eur", 10)

	suite.Require().NoError(err)
	suite.mockRates.AssertExpectations(suite.T())
}

// --- Sell ---

func (suite *LedgerServiceTestSuite) TestSell_Success() {
	ctx := context.Background()

	suite.mockTradeRepo.On("FindPosition", ctx, suite.userID, "USD").
		Return(&domain.Position{UserID: suite.userID, CurrencyCode: "USD", Quantity: 100}, nil).Once()
	suite.mockRates.On("Lookup", ctx, "USD").Return(rateFor("USD", "dolar amerykański", "4.50"), nil).Once()

	updatedUser := suite.userWithBalance("9780")
	position := &domain.Position{UserID: suite.userID, CurrencyCode: "USD", Quantity: 60}
	entry := &domain.LedgerEntry{
		UserID:       suite.userID,
		CurrencyCode: "USD",
		CurrencyName: "dolar amerykański",
		Quantity:     -40,
		Price:        decimal.RequireFromString("4.50"),
	}

	suite.mockTradeRepo.On("ExecuteTrade", ctx, mock.MatchedBy(func(exec portsrepo.TradeExecution) bool {
		return exec.BalanceDelta.Equal(decimal.RequireFromString("180")) &&
			exec.QuantityDelta == -40 &&
			exec.Price.Equal(decimal.RequireFromString("4.50"))
	})).Return(updatedUser, position, entry, nil).Once()

	result, err := suite.service.Sell(ctx, suite.userID, "USD", 40)

	suite.Require().NoError(err)
	suite.True(result.User.Balance.Equal(decimal.RequireFromString("9780")))
	suite.Require().NotNil(result.Position)
	suite.Equal(int64(60), result.Position.Quantity)
	suite.Equal(int64(-40), result.Entry.Quantity)
	suite.True(result.TradeValue.Equal(decimal.RequireFromString("180")))
}

func (suite *LedgerServiceTestSuite) TestSell_ClosesPositionAtZero() {
	ctx := context.Background()

	suite.mockTradeRepo.On("FindPosition", ctx, suite.userID, "USD").
		Return(&domain.Position{UserID: suite.userID, CurrencyCode: "USD", Quantity: 60}, nil).Once()
	suite.mockRates.On("Lookup", ctx, "USD").Return(rateFor("USD", "dolar amerykański", "4.10"), nil).Once()

	updatedUser := suite.userWithBalance("10026")
	entry := &domain.LedgerEntry{
		UserID:       suite.userID,
		CurrencyCode: "USD",
		Quantity:     -60,
		Price:        decimal.RequireFromString("4.10"),
	}

	suite.mockTradeRepo.On("ExecuteTrade", ctx, mock.MatchedBy(func(exec portsrepo.TradeExecution) bool {
		return exec.BalanceDelta.Equal(decimal.RequireFromString("246")) && exec.QuantityDelta == -60
	})).Return(updatedUser, nil, entry, nil).Once()

	result, err := suite.service.Sell(ctx, suite.userID, "USD", 60)

	suite.Require().NoError(err)
	suite.True(result.User.Balance.Equal(decimal.RequireFromString("10026")))
	suite.Nil(result.Position)
	suite.Equal(int64(-60), result.Entry.Quantity)
}

func (suite *LedgerServiceTestSuite) TestSell_NoPosition() {
	ctx := context.Background()

	suite.mockTradeRepo.On("FindPosition", ctx, suite.userID, "CHF").
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.Sell(ctx, suite.userID, "CHF", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientHoldings)
	suite.Nil(result)
	suite.mockRates.AssertNotCalled(suite.T(), "Lookup", mock.Anything, mock.Anything)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "ExecuteTrade", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSell_InsufficientHoldings() {
	ctx := context.Background()

	suite.mockTradeRepo.On("FindPosition", ctx, suite.userID, "USD").
		Return(&domain.Position{UserID: suite.userID, CurrencyCode: "USD", Quantity: 10}, nil).Once()

	result, err := suite.service.Sell(ctx, suite.userID, "USD", 50)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientHoldings)
	suite.Nil(result)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "ExecuteTrade", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSell_InvalidQuantity() {
	ctx := context.Background()

	result, err := suite.service.Sell(ctx, suite.userID, "USD", 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

// --- CanPurchase / CanSell ---

func (suite *LedgerServiceTestSuite) TestCanPurchase() {
	user := suite.userWithBalance("100")

	suite.True(suite.service.CanPurchase(user, decimal.RequireFromString("99.99")))
	suite.True(suite.service.CanPurchase(user, decimal.RequireFromString("100")))
	suite.False(suite.service.CanPurchase(user, decimal.RequireFromString("100.01")))
}

func (suite *LedgerServiceTestSuite) TestCanSell() {
	ctx := context.Background()

	suite.mockTradeRepo.On("FindPosition", ctx, suite.userID, "USD").
		Return(&domain.Position{UserID: suite.userID, CurrencyCode: "USD", Quantity: 50}, nil).Twice()
	suite.mockTradeRepo.On("FindPosition", ctx, suite.userID, "GBP").
		Return(nil, apperrors.ErrNotFound).Once()

	ok, err := suite.service.CanSell(ctx, suite.userID, "USD", 50)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.CanSell(ctx, suite.userID, "USD", 51)
	suite.Require().NoError(err)
	suite.False(ok)

	ok, err = suite.service.CanSell(ctx, suite.userID, "GBP", 1)
	suite.Require().NoError(err)
	suite.False(ok)
}

// --- Portfolio / History ---

func (suite *LedgerServiceTestSuite) TestGetPortfolio() {
	ctx := context.Background()

	positions := []domain.Position{
		{UserID: suite.userID, CurrencyCode: "EUR", Quantity: 25},
		{UserID: suite.userID, CurrencyCode: "USD", Quantity: 60},
	}
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("9780"), nil).Once()
	suite.mockTradeRepo.On("ListPositionsByUserID", ctx, suite.userID).Return(positions, nil).Once()

	resp, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("9780")))
	suite.Require().Len(resp.Positions, 2)
	suite.Equal("EUR", resp.Positions[0].CurrencyCode)
	suite.Equal(int64(25), resp.Positions[0].Quantity)
	suite.Equal("USD", resp.Positions[1].CurrencyCode)
}

func (suite *LedgerServiceTestSuite) TestGetPortfolio_Empty() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(suite.userWithBalance("10000"), nil).Once()
	suite.mockTradeRepo.On("ListPositionsByUserID", ctx, suite.userID).Return([]domain.Position{}, nil).Once()

	resp, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(resp.Positions)
}

func (suite *LedgerServiceTestSuite) TestListHistory() {
	ctx := context.Background()

	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), UserID: suite.userID, CurrencyCode: "USD", Quantity: -40, Price: decimal.RequireFromString("4.50")},
		{EntryID: uuid.NewString(), UserID: suite.userID, CurrencyCode: "USD", Quantity: 100, Price: decimal.RequireFromString("4.00")},
	}
	nextToken := "opaque-token"
	suite.mockTradeRepo.On("ListLedgerEntriesByUserID", ctx, suite.userID, 10, (*string)(nil)).
		Return(entries, &nextToken, nil).Once()

	resp, err := suite.service.ListHistory(ctx, suite.userID, dto.ListHistoryParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 2)
	suite.Equal(int64(-40), resp.Entries[0].Quantity)
	suite.Equal(int64(100), resp.Entries[1].Quantity)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
}

func (suite *LedgerServiceTestSuite) TestListHistory_DefaultLimit() {
	ctx := context.Background()

	suite.mockTradeRepo.On("ListLedgerEntriesByUserID", ctx, suite.userID, 20, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	resp, err := suite.service.ListHistory(ctx, suite.userID, dto.ListHistoryParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
