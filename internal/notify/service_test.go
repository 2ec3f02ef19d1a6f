package notify

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturingPublisher struct {
	events []FeedEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, userID uint, ev FeedEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock, *capturingPublisher) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	pub := &capturingPublisher{}
	return NewService(gormDB, pub), mock, pub
}

func TestMarkAllRead_IsIdempotent(t *testing.T) {
	svc, mock, pub := newMockService(t)
	ctx := context.Background()

	// primeira chamada marca 3 notificações e publica o evento
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read_at"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	updated, err := svc.MarkAllRead(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventReadAll, pub.events[0].Kind)
	assert.Equal(t, int64(0), pub.events[0].UnreadCount)

	// segunda chamada não encontra nada para marcar e fica em silêncio
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	updated, err = svc.MarkAllRead(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
	assert.Len(t, pub.events, 1, "repetição não deve publicar novo evento")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead_MissingReturnsNilNil(t *testing.T) {
	svc, mock, pub := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	n, err := svc.MarkRead(context.Background(), 7, 99)
	assert.NoError(t, err)
	assert.Nil(t, n)
	assert.Empty(t, pub.events)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead_AlreadyReadIsNoOp(t *testing.T) {
	svc, mock, pub := newMockService(t)

	readAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "read_at"}).
			AddRow(5, 7, readAt))

	n, err := svc.MarkRead(context.Background(), 7, 5)
	require.NoError(t, err)
	require.NotNil(t, n)
	require.NotNil(t, n.ReadAt)
	assert.Equal(t, readAt, n.ReadAt.UTC())
	assert.Empty(t, pub.events, "já lida: sem update e sem evento")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead_PublishesWithFreshUnreadCount(t *testing.T) {
	svc, mock, pub := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "read_at"}).
			AddRow(5, 7, nil))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notifications" SET "read_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := svc.MarkRead(context.Background(), 7, 5)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.NotNil(t, n.ReadAt)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventRead, pub.events[0].Kind)
	assert.Equal(t, int64(2), pub.events[0].UnreadCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_UnreadOnlyAndOrdering(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE user_id = .+ AND read_at IS NULL ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title"}).
			AddRow(9, 7, "mais recente").
			AddRow(4, 7, "mais antiga"))

	list, err := svc.List(context.Background(), ListInput{UserID: 7, UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(9), list[0].ID)
	assert.Equal(t, uint(4), list[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_DefaultPageSize(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "notifications" .+ LIMIT \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.List(context.Background(), ListInput{UserID: 7})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
