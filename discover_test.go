package resolver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverParams_FieldOrder(t *testing.T) {
	params, err := discoverParams(reflect.TypeOf(reportingService{}))

	assert.NoError(t, err)
	assert.Equal(t, []reflect.Type{
		reflect.TypeOf((*string)(nil)),
		reflect.TypeOf((*int)(nil)),
		reflect.TypeOf((*counterService)(nil)).Elem(),
	}, params)
}

func TestDiscoverParams_NonStruct(t *testing.T) {
	params, err := discoverParams(reflect.TypeOf(0))

	assert.NoError(t, err)
	assert.Empty(t, params)
}

func TestDiscoverParams_UnexportedField(t *testing.T) {
	_, err := discoverParams(reflect.TypeOf(secretHolder{}))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscoverParams_Cached(t *testing.T) {
	first, err := discoverParams(reflect.TypeOf(counterController{}))
	assert.NoError(t, err)

	second, err := discoverParams(reflect.TypeOf(counterController{}))
	assert.NoError(t, err)

	// The cached entry is returned as-is, not recomputed.
	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())
}

func TestServiceKey(t *testing.T) {
	ifaceType := reflect.TypeOf((*counterService)(nil)).Elem()
	ptrType := reflect.TypeOf((*countingService)(nil))

	assert.Equal(t, ifaceType, serviceKey(ifaceType))
	assert.Equal(t, ptrType, serviceKey(ptrType))
	assert.Equal(t, reflect.TypeOf((*int)(nil)), serviceKey(reflect.TypeOf(0)))
}

func TestAnalyzeConstructor(t *testing.T) {
	key := reflect.TypeOf((*counterService)(nil)).Elem()

	info := analyzeConstructor(key, func(counter *int) (*countingService, error) {
		return &countingService{Counter: counter}, nil
	})

	assert.Equal(t, []reflect.Type{reflect.TypeOf((*int)(nil))}, info.params)
	assert.Equal(t, reflect.TypeOf((*countingService)(nil)), info.result)
	assert.True(t, info.hasError)
}

func TestAnalyzeConstructor_NoParams(t *testing.T) {
	key := reflect.TypeOf((*countingService)(nil))

	info := analyzeConstructor(key, func() *countingService {
		n := 0
		return &countingService{Counter: &n}
	})

	assert.Empty(t, info.params)
	assert.False(t, info.hasError)
}
