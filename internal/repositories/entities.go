package repositories

import (
	"quizadmin/internal/models"

	"gorm.io/gorm"
)

// Entity repositories are the generic CRUD repository specialised with the
// columns free-text search runs over and the list ordering.

func NewCategoryRepository(db *gorm.DB) *CrudRepository[models.Category] {
	return NewCrudRepository[models.Category](db, []string{"name"}, "serial ASC, id ASC")
}

func NewQuizRepository(db *gorm.DB) *CrudRepository[models.Quiz] {
	return NewCrudRepository[models.Quiz](db, []string{"title", "description"}, "serial ASC, id ASC")
}

func NewQuestionRepository(db *gorm.DB) *CrudRepository[models.Question] {
	return NewCrudRepository[models.Question](db, []string{"text"}, "serial ASC, id ASC")
}

func NewBannerRepository(db *gorm.DB) *CrudRepository[models.Banner] {
	return NewCrudRepository[models.Banner](db, []string{"title"}, "serial ASC, id ASC")
}

func NewUserRepository(db *gorm.DB) *CrudRepository[models.User] {
	return NewCrudRepository[models.User](db, []string{"name", "email"}, "id DESC")
}

func NewWithdrawalRequestRepository(db *gorm.DB) *CrudRepository[models.WithdrawalRequest] {
	return NewCrudRepository[models.WithdrawalRequest](db, nil, "id DESC")
}
