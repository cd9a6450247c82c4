package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"Milo", "Coffee", "Tea", "Sugar"}

func TestNewState(t *testing.T) {
	_, err := NewState(nil)
	require.Error(t, err)

	s, err := NewState(testCategories)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Categories())
	assert.Equal(t, 0, s.Category().Index)
	assert.Equal(t, "Milo", s.Category().Name)
	assert.False(t, s.SendRequested())
	assert.False(t, s.TakeTare())
}

func TestCategoryClamps(t *testing.T) {
	s, err := NewState(testCategories)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		s.Prev()
	}
	assert.Equal(t, 0, s.Category().Index)

	for i := 0; i < 7; i++ {
		s.Next()
	}
	assert.Equal(t, 3, s.Category().Index)
	assert.Equal(t, "Sugar", s.Category().Name)

	for i := 0; i < 3; i++ {
		s.Next()
	}
	assert.Equal(t, 3, s.Category().Index)

	s.Prev()
	assert.Equal(t, "Tea", s.Category().Name)
}

func TestCategoryClampsSingle(t *testing.T) {
	s, err := NewState([]string{"Flour"})
	require.NoError(t, err)

	s.Next()
	s.Prev()
	s.Next()
	assert.Equal(t, 0, s.Category().Index)
}

func TestCategoryConcurrentNavigation(t *testing.T) {
	s, err := NewState(testCategories)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Next()
		}()
		go func() {
			defer wg.Done()
			s.Prev()
		}()
	}
	wg.Wait()

	idx := s.Category().Index
	assert.GreaterOrEqual(t, idx, 0)
	assert.LessOrEqual(t, idx, 3)
}

func TestRequestFlags(t *testing.T) {
	s, err := NewState(testCategories)
	require.NoError(t, err)

	s.RequestSend()
	s.RequestSend()
	assert.True(t, s.SendRequested())
	s.ClearSend()
	assert.False(t, s.SendRequested())

	s.RequestTare()
	assert.True(t, s.TakeTare())
	assert.False(t, s.TakeTare())
}
