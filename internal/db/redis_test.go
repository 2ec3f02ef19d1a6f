package db

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/clinic-api/internal/config"
)

func TestNewRedis_ReturnsClientWhenReachable(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedis(&config.Config{RedisAddr: mr.Addr()})
	require.NotNil(t, client)
	t.Cleanup(func() { client.Close() })
}

// Sem redis o feed ao vivo é desligado: o cliente tem que vir nil para
// as rotas caírem no NopPublisher em vez de publicar no vazio.
func TestNewRedis_NilWhenUnreachable(t *testing.T) {
	client := NewRedis(&config.Config{RedisAddr: "127.0.0.1:1"})
	assert.Nil(t, client)
}
