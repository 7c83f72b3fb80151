package roadmap

import (
	"context"
	"sync"
)

var _ store = &storeMock{}

type storeMock struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string) error
	DeleteFunc func(ctx context.Context, key string) error

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
		Delete []struct {
			Ctx context.Context
			Key string
		}
	}
	lockGet    sync.RWMutex
	lockSet    sync.RWMutex
	lockDelete sync.RWMutex
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

func (mock *storeMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("storeMock.DeleteFunc: method is nil but store.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *storeMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
