package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextdentist/booking-service/pkg/dbmetrics"
)

// fakeTx транзакция с управляемым результатом Commit
type fakeTx struct {
	commitErr error
	committed bool
	rolled    bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolled = true
	return nil
}

// fakeBeginner выдает заранее подготовленные транзакции по очереди
type fakeBeginner struct {
	txs    []*fakeTx
	begins int
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.begins >= len(b.txs) {
		return nil, errors.New("no more transactions")
	}
	tx := b.txs[b.begins]
	b.begins++
	return tx, nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestDoSerializable_Success(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{{}}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, beginner.txs[0].committed)
}

func TestDoSerializable_RetriesOnCommitConflict(t *testing.T) {
	// Первые две попытки падают на коммите с 40001, третья проходит
	beginner := &fakeBeginner{txs: []*fakeTx{
		{commitErr: serializationErr()},
		{commitErr: serializationErr()},
		{},
	}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, beginner.begins)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{
		{commitErr: serializationErr()},
		{commitErr: serializationErr()},
		{commitErr: serializationErr()},
	}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.Equal(t, maxSerializableRetries, beginner.begins)

	// Код 40001 сохранен в цепочке после оборачивания
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}

func TestDoSerializable_RetriesOnConflictInsideFn(t *testing.T) {
	// Конфликт сериализации может всплыть и на запросе внутри транзакции:
	// репозиторий оборачивает ошибку драйвера через %w, retry должен ее увидеть
	beginner := &fakeBeginner{txs: []*fakeTx{{}, {}}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("appointment repository: execute query error: %w", serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, beginner.txs[0].rolled)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_NoRetryOnOtherError(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{{}, {}}}
	m := NewTransactionManager(beginner)

	wantErr := errors.New("business failure")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
	assert.True(t, beginner.txs[0].rolled)
}
