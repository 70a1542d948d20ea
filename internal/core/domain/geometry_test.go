package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryCanLoad(t *testing.T) {
	assert.True(t, IdleGeometry().CanLoad())
	assert.True(t, FailedGeometry("boom").CanLoad())
	assert.False(t, LoadingGeometry().CanLoad())
	assert.False(t, ReadyGeometry(nil).CanLoad())
}

func TestReadyGeometryNeverNilData(t *testing.T) {
	s := ReadyGeometry(nil)
	assert.NotNil(t, s.Data)
	assert.Empty(t, s.Error)
}
