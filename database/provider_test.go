package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/pure-orm/connection"
	"github.com/satishbabariya/pure-orm/driver"
)

func TestMainWithoutPreparePanics(t *testing.T) {
	p := NewProvider()
	assert.Panics(t, func() { p.Main(context.Background()) })
}

func TestMainIsLazyAndShared(t *testing.T) {
	p := NewProvider()
	p.Prepare(&connection.Settings{Type: driver.SQLite, Filename: ":memory:"})

	first := p.Main(context.Background())
	require.True(t, first.IsConnected(), first.Err())

	second := p.Main(context.Background())
	assert.Same(t, first, second)

	require.NoError(t, p.End())
	assert.False(t, first.IsConnected())

	third := p.Main(context.Background())
	assert.NotSame(t, first, third)
	assert.True(t, third.IsConnected())
	require.NoError(t, p.End())

	assert.NoError(t, p.End())
}

func TestMainKeepsFailedConnection(t *testing.T) {
	p := NewProvider()
	p.Prepare(&connection.Settings{Type: "oracle"})

	d := p.Main(context.Background())
	assert.False(t, d.IsConnected())
	assert.NotEmpty(t, d.Err())
}

func TestChange(t *testing.T) {
	p := NewProvider()
	d, _ := newMock(t)

	p.Change(d)
	assert.Same(t, d, p.Main(context.Background()))

	p.Change(nil)
	assert.Same(t, d, p.Main(context.Background()))
}
