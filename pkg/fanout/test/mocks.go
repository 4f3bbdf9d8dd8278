// Package test provides shared mocks and factories for fanout tests.
package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
)

// MockEngine is a mock implementation of the ports.Engine interface.
// It uses testify/mock to allow for flexible mocking of method calls.
type MockEngine struct {
	mock.Mock
}

// Submit mocks the Submit method. It records the call and returns the
// predefined values.
func (m *MockEngine) Submit(ctx context.Context, batch *model.BatchSubmission) (ports.Receipt, error) {
	args := m.Called(ctx, batch)
	receipt, _ := args.Get(0).(ports.Receipt)
	return receipt, args.Error(1)
}

var _ ports.Engine = (*MockEngine)(nil)

// MockReceipt is a trivial ports.Receipt for test expectations.
type MockReceipt struct {
	BatchID string
}

// ID returns the preset batch ID.
func (r *MockReceipt) ID() string {
	return r.BatchID
}

var _ ports.Receipt = (*MockReceipt)(nil)

// MockNotifier is a mock implementation of the ports.Notifier interface.
type MockNotifier struct {
	mock.Mock
}

// Notify mocks the Notify method.
func (m *MockNotifier) Notify(ctx context.Context, message string) {
	m.Called(ctx, message)
}

var _ ports.Notifier = (*MockNotifier)(nil)

// StubParentJob is a configurable ports.ParentJob implementation. Notifications
// sent to it are collected in Messages for assertion.
type StubParentJob struct {
	JobLabel   string
	JobMapping string
	JobChain   []*model.JobDescriptor
	Messages   []string
}

// Label returns the configured job label.
func (j *StubParentJob) Label() string {
	return j.JobLabel
}

// Mapping returns the configured job type.
func (j *StubParentJob) Mapping() string {
	return j.JobMapping
}

// Chain returns the configured reattachment chain.
func (j *StubParentJob) Chain() []*model.JobDescriptor {
	return j.JobChain
}

// Notify collects the message, satisfying ports.Notifier.
func (j *StubParentJob) Notify(ctx context.Context, message string) {
	j.Messages = append(j.Messages, message)
}

var (
	_ ports.ParentJob = (*StubParentJob)(nil)
	_ ports.Notifier  = (*StubParentJob)(nil)
)

// SilentParentJob is a ParentJob that does not implement ports.Notifier, for
// exercising the notification type assertion's negative path.
type SilentParentJob struct {
	JobLabel   string
	JobMapping string
	JobChain   []*model.JobDescriptor
}

// Label returns the configured job label.
func (j *SilentParentJob) Label() string {
	return j.JobLabel
}

// Mapping returns the configured job type.
func (j *SilentParentJob) Mapping() string {
	return j.JobMapping
}

// Chain returns the configured reattachment chain.
func (j *SilentParentJob) Chain() []*model.JobDescriptor {
	return j.JobChain
}

var _ ports.ParentJob = (*SilentParentJob)(nil)
