package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	now := time.Now()

	newData := domain.User{
		UUID:              uuid.New(),
		Name:              user.Name,
		Email:             user.Email,
		EncryptedPassword: user.EncryptedPassword,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	user, err := us.repo.Create(ctx, newData)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (us *UserService) GetUserByUUID(ctx context.Context, uuid string) (domain.User, error) {
	return us.repo.GetByUUID(ctx, uuid)
}

func (us *UserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return us.repo.GetByEmail(ctx, email)
}

func (us *UserService) DeleteByUUID(ctx context.Context, uid string) error {
	return us.repo.DeleteByUUID(ctx, uid)
}
