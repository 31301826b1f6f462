package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/core/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	MockCategoryReader
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Test Suite ---
type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Food", Nature: domain.NatureNeed, Color: "green"}

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == req.Name && c.Nature == req.Nature && c.ParentCategoryID == ""
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Food", category.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Subcategory() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Coffee", Nature: domain.NatureWant, ParentCategoryID: "cat-food"}

	suite.mockRepo.On("FindCategoryByID", ctx, "cat-food").
		Return(&domain.Category{CategoryID: "cat-food"}, nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.ParentCategoryID == "cat-food"
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("cat-food", category.ParentCategoryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_RejectsNestingUnderSubcategory() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Beans", Nature: domain.NatureWant, ParentCategoryID: "cat-coffee"}

	suite.mockRepo.On("FindCategoryByID", ctx, "cat-coffee").
		Return(&domain.Category{CategoryID: "cat-coffee", ParentCategoryID: "cat-food"}, nil).Once()

	_, err := suite.service.CreateCategory(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_UnknownParent() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Coffee", Nature: domain.NatureWant, ParentCategoryID: "nope"}

	suite.mockRepo.On("FindCategoryByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateCategory(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_PartialFields() {
	ctx := context.Background()
	existing := &domain.Category{CategoryID: "cat-1", Name: "Food", Nature: domain.NatureNeed, Color: "green"}

	suite.mockRepo.On("FindCategoryByID", ctx, "cat-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Dining" && c.Nature == domain.NatureNeed && c.Color == "green"
	})).Return(nil).Once()

	name := "Dining"
	category, err := suite.service.UpdateCategory(ctx, "cat-1", dto.UpdateCategoryRequest{Name: &name})

	suite.Require().NoError(err)
	suite.Equal("Dining", category.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
