package repositories_test

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

func (s *RepositorySuite) TestUserCreateRejectsDuplicateEmail() {
	id := s.createUser("ana@example.com")
	s.NotZero(id)

	again, err := s.users.Create(s.ctx, &models.User{Name: "Other", Email: "ana@example.com", Credential: "x", Active: true})
	s.ErrorIs(err, repositories.ErrDuplicateEmail)
	s.Zero(again)

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *RepositorySuite) TestUserGetters() {
	id := s.createUser("ana@example.com")

	user, err := s.users.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("ana@example.com", user.Email)
	s.True(user.Active)

	byEmail, err := s.users.GetByEmail(s.ctx, "ana@example.com")
	s.Require().NoError(err)
	s.Equal(id, byEmail.ID)

	_, err = s.users.GetByID(s.ctx, id+1)
	s.ErrorIs(err, repositories.ErrNotFound)
	_, err = s.users.GetByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *RepositorySuite) TestVerifyLogin() {
	id := s.createUser("ana@example.com")

	got, err := s.users.VerifyLogin(s.ctx, "ana@example.com", "secret1")
	s.Require().NoError(err)
	s.Equal(id, got)

	_, err = s.users.VerifyLogin(s.ctx, "ana@example.com", "wrong")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)

	_, err = s.users.VerifyLogin(s.ctx, "nobody@example.com", "secret1")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)

	s.Require().NoError(s.users.Deactivate(s.ctx, id))
	_, err = s.users.VerifyLogin(s.ctx, "ana@example.com", "secret1")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)
}

func (s *RepositorySuite) TestUserCreatedInactiveCannotLogin() {
	id, err := s.users.Create(s.ctx, &models.User{Name: "Bia", Email: "bia@example.com", Credential: "secret1"})
	s.Require().NoError(err)

	user, err := s.users.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.False(user.Active)

	_, err = s.users.VerifyLogin(s.ctx, "bia@example.com", "secret1")
	s.ErrorIs(err, repositories.ErrInvalidCredentials)
}

func (s *RepositorySuite) TestDeactivateUnknownUser() {
	err := s.users.Deactivate(s.ctx, 42)
	s.ErrorIs(err, repositories.ErrNotFound)
}
