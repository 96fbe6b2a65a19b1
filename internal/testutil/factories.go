package testutil

import (
	"errors"
	"fmt"

	"github.com/scopekit/scopekit"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrIntentional = errors.New("intentional error")
	ErrBind        = errors.New("bind error")
	ErrTearDown    = errors.New("teardown error")
)

// CountingFactory counts how often its bind hook runs and logs every
// teardown. When Tag is non-empty, bind also binds the current count under
// it, so tests can observe exactly-once builds through the registry.
type CountingFactory struct {
	Tag string

	BindCount   int
	TearDownLog []string

	BindErr     error
	TearDownErr error
}

func (f *CountingFactory) BindServices(builder *scopekit.Builder) error {
	if f.BindErr != nil {
		return f.BindErr
	}

	f.BindCount++
	if f.Tag != "" {
		builder.Put(f.Tag, f.BindCount)
	}

	return nil
}

func (f *CountingFactory) TearDownServices(services *scopekit.Services) error {
	if f.TearDownErr != nil {
		return f.TearDownErr
	}

	f.TearDownLog = append(f.TearDownLog, fmt.Sprint(services.Key()))
	return nil
}

// EventLog collects bind/teardown events across factories so tests can
// assert global ordering.
type EventLog struct {
	Events []string
}

// RecordingFactory appends "name:bind:key" and "name:teardown:key" events to
// a shared EventLog.
type RecordingFactory struct {
	Name string
	Log  *EventLog
}

func (f *RecordingFactory) BindServices(builder *scopekit.Builder) error {
	f.Log.Events = append(f.Log.Events, fmt.Sprintf("%s:bind:%v", f.Name, builder.Key()))
	return nil
}

func (f *RecordingFactory) TearDownServices(services *scopekit.Services) error {
	f.Log.Events = append(f.Log.Events, fmt.Sprintf("%s:teardown:%v", f.Name, services.Key()))
	return nil
}

// CloseRecorder implements scopekit.Disposable and records the order of
// Close calls in a shared slice.
type CloseRecorder struct {
	Name   string
	Closed *[]string
	Err    error
}

func (c *CloseRecorder) Close() error {
	*c.Closed = append(*c.Closed, c.Name)
	return c.Err
}
