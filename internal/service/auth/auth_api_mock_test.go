package auth

import (
	"context"
	"sync"

	"github.com/heartmarshall/kairon-web/internal/apiclient"
	"github.com/heartmarshall/kairon-web/internal/domain"
)

var _ authAPI = &authAPIMock{}

type authAPIMock struct {
	LoginFunc    func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	RegisterFunc func(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.RegisterResponse, error)
	GetMeFunc    func(ctx context.Context) (*domain.User, error)

	calls struct {
		Login []struct {
			Ctx context.Context
			Req apiclient.LoginRequest
		}
		Register []struct {
			Ctx context.Context
			Req apiclient.RegisterRequest
		}
		GetMe []struct {
			Ctx context.Context
		}
	}
	lockLogin    sync.RWMutex
	lockRegister sync.RWMutex
	lockGetMe    sync.RWMutex
}

func (mock *authAPIMock) Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
	if mock.LoginFunc == nil {
		panic("authAPIMock.LoginFunc: method is nil but authAPI.Login was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req apiclient.LoginRequest
	}{Ctx: ctx, Req: req}
	mock.lockLogin.Lock()
	mock.calls.Login = append(mock.calls.Login, callInfo)
	mock.lockLogin.Unlock()
	return mock.LoginFunc(ctx, req)
}

func (mock *authAPIMock) LoginCalls() []struct {
	Ctx context.Context
	Req apiclient.LoginRequest
} {
	mock.lockLogin.RLock()
	calls := mock.calls.Login
	mock.lockLogin.RUnlock()
	return calls
}

func (mock *authAPIMock) Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.RegisterResponse, error) {
	if mock.RegisterFunc == nil {
		panic("authAPIMock.RegisterFunc: method is nil but authAPI.Register was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req apiclient.RegisterRequest
	}{Ctx: ctx, Req: req}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, req)
}

func (mock *authAPIMock) RegisterCalls() []struct {
	Ctx context.Context
	Req apiclient.RegisterRequest
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}

func (mock *authAPIMock) GetMe(ctx context.Context) (*domain.User, error) {
	if mock.GetMeFunc == nil {
		panic("authAPIMock.GetMeFunc: method is nil but authAPI.GetMe was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockGetMe.Lock()
	mock.calls.GetMe = append(mock.calls.GetMe, callInfo)
	mock.lockGetMe.Unlock()
	return mock.GetMeFunc(ctx)
}

func (mock *authAPIMock) GetMeCalls() []struct{ Ctx context.Context } {
	mock.lockGetMe.RLock()
	calls := mock.calls.GetMe
	mock.lockGetMe.RUnlock()
	return calls
}
