package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/internal/service/auth"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (*auth.Result, error)
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (*auth.Result, error)
	MeFunc       func(ctx context.Context) (*domain.User, error)

	calls struct {
		Login []struct {
			Ctx   context.Context
			Input auth.LoginInput
		}
		Register []struct {
			Ctx   context.Context
			Input auth.RegisterInput
		}
		Me []struct {
			Ctx context.Context
		}
	}
	lockLogin    sync.RWMutex
	lockRegister sync.RWMutex
	lockMe       sync.RWMutex
}

func (mock *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.Result, error) {
	if mock.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.LoginInput
	}{Ctx: ctx, Input: input}
	mock.lockLogin.Lock()
	mock.calls.Login = append(mock.calls.Login, callInfo)
	mock.lockLogin.Unlock()
	return mock.LoginFunc(ctx, input)
}

func (mock *authServiceMock) LoginCalls() []struct {
	Ctx   context.Context
	Input auth.LoginInput
} {
	mock.lockLogin.RLock()
	calls := mock.calls.Login
	mock.lockLogin.RUnlock()
	return calls
}

func (mock *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.Result, error) {
	if mock.RegisterFunc == nil {
		panic("authServiceMock.RegisterFunc: method is nil but authService.Register was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.RegisterInput
	}{Ctx: ctx, Input: input}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, input)
}

func (mock *authServiceMock) RegisterCalls() []struct {
	Ctx   context.Context
	Input auth.RegisterInput
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}

func (mock *authServiceMock) Me(ctx context.Context) (*domain.User, error) {
	if mock.MeFunc == nil {
		panic("authServiceMock.MeFunc: method is nil but authService.Me was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockMe.Lock()
	mock.calls.Me = append(mock.calls.Me, callInfo)
	mock.lockMe.Unlock()
	return mock.MeFunc(ctx)
}

func (mock *authServiceMock) MeCalls() []struct {
	Ctx context.Context
} {
	mock.lockMe.RLock()
	calls := mock.calls.Me
	mock.lockMe.RUnlock()
	return calls
}
