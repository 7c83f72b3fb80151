package habit

import (
	"context"
	"sync"
)

var _ store = &storeMock{}

type storeMock struct {
	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key string, value string) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value string
		}
	}
	lockGet sync.RWMutex
	lockSet sync.RWMutex
}

func (mock *storeMock) Get(ctx context.Context, key string) (string, error) {
	if mock.GetFunc == nil {
		panic("storeMock.GetFunc: method is nil but store.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *storeMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *storeMock) Set(ctx context.Context, key string, value string) error {
	if mock.SetFunc == nil {
		panic("storeMock.SetFunc: method is nil but store.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value string
	}{Ctx: ctx, Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value)
}

func (mock *storeMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value string
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
