package api

import "github.com/kaimahi/ergosurvey/internal/services"

type authStoreAdapter struct {
	store Store
}

func newAuthStoreAdapter(store Store) services.AuthStore {
	return &authStoreAdapter{store: store}
}

func (a *authStoreAdapter) FindUserByEmail(email string) (*services.User, error) {
	return a.store.FindUserByEmail(email), nil
}

func (a *authStoreAdapter) AddUser(u *services.User) error {
	a.store.AddUser(u)
	return nil
}

var _ services.AuthStore = (*authStoreAdapter)(nil)
