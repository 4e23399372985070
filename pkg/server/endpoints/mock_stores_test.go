package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/modelgate/modelgate/pkg/server/store"
)

// MockRecordsStore implements store.RecordsStore for testing using testify/mock
type MockRecordsStore struct {
	mock.Mock
}

func NewMockRecordsStore() *MockRecordsStore {
	return &MockRecordsStore{}
}

func (m *MockRecordsStore) ListRecords() ([]store.Record, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

func (m *MockRecordsStore) FetchRecord(id string) (*store.Record, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) CreateRecord(col1, col2 string) (*store.Record, error) {
	args := m.Called(col1, col2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) UpdateRecord(id, col1, col2 string) (*store.Record, error) {
	args := m.Called(id, col1, col2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) DeleteRecord(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAuthzStore implements store.AuthzStore for testing using testify/mock
type MockAuthzStore struct {
	mock.Mock
}

func NewMockAuthzStore() *MockAuthzStore {
	return &MockAuthzStore{}
}

func (m *MockAuthzStore) UserCan(userID, permission string) bool {
	args := m.Called(userID, permission)
	return args.Bool(0)
}

func (m *MockAuthzStore) Permissions(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) FetchUser(id string) (*store.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByLogin(login string) (*store.User, error) {
	args := m.Called(login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) Authenticate(login string, password []byte) (*store.User, error) {
	args := m.Called(login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) CreateUser(login string, password []byte) (*store.User, error) {
	args := m.Called(login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) GrantPermission(userID, permission string) error {
	args := m.Called(userID, permission)
	return args.Error(0)
}

func (m *MockUsersStore) ListUsers() ([]store.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.User), args.Error(1)
}
