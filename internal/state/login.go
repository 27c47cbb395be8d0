package state

import (
	"context"

	"vitrin/internal/domain"
)

type LoginState struct {
	LoggedIn bool
	Session  domain.Session
	Status   Status
	Error    string
}

func (s *LoginState) reduce(a Action) {
	switch a.Type {
	case LoginPending:
		s.Status = StatusLoading
		s.Error = ""
	case LoginFulfilled:
		s.Status = StatusSucceeded
		s.LoggedIn = true
		s.Session = a.Payload.(domain.Session)
	case LoginRejected:
		s.Status = StatusFailed
		s.Error = errMessage(a.Err)
	}
}

func (s *Store) LoginUser(ctx context.Context, creds domain.Credentials) error {
	s.Dispatch(Action{Type: LoginPending})
	sess, status, err := s.client.Login(ctx, creds)
	if err != nil {
		s.Dispatch(Action{Type: LoginRejected, HTTPStatus: status, Err: err})
		return err
	}
	s.Dispatch(Action{Type: LoginFulfilled, Payload: sess, HTTPStatus: status})
	return nil
}
