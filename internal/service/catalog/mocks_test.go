package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/ipa-mnemonic/internal/domain"
)

type pictureRepoMock struct {
	ListAllFunc    func(ctx context.Context) ([]domain.PictureWord, error)
	InsertManyFunc func(ctx context.Context, words []domain.PictureWord) error
	UpdateKeysFunc func(ctx context.Context, updates []domain.KeyUpdate) error

	mu         sync.Mutex
	inserted   [][]domain.PictureWord
	updateKeys [][]domain.KeyUpdate
}

func (m *pictureRepoMock) ListAll(ctx context.Context) ([]domain.PictureWord, error) {
	return m.ListAllFunc(ctx)
}

func (m *pictureRepoMock) InsertMany(ctx context.Context, words []domain.PictureWord) error {
	m.mu.Lock()
	m.inserted = append(m.inserted, words)
	m.mu.Unlock()
	if m.InsertManyFunc == nil {
		return nil
	}
	return m.InsertManyFunc(ctx, words)
}

func (m *pictureRepoMock) UpdateKeys(ctx context.Context, updates []domain.KeyUpdate) error {
	m.mu.Lock()
	m.updateKeys = append(m.updateKeys, updates)
	m.mu.Unlock()
	if m.UpdateKeysFunc == nil {
		return nil
	}
	return m.UpdateKeysFunc(ctx, updates)
}

type keywordRepoMock struct {
	InsertFunc func(ctx context.Context, sourceText, rawIPA string) (domain.Keyword, error)

	mu    sync.Mutex
	calls []string
}

func (m *keywordRepoMock) Insert(ctx context.Context, sourceText, rawIPA string) (domain.Keyword, error) {
	m.mu.Lock()
	m.calls = append(m.calls, sourceText)
	m.mu.Unlock()
	if m.InsertFunc == nil {
		return domain.Keyword{SourceText: sourceText, RawIPA: rawIPA}, nil
	}
	return m.InsertFunc(ctx, sourceText, rawIPA)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error

	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	m.calls++
	return m.RunInTxFunc(ctx, fn)
}

// defaultTxMock returns a txManagerMock that simply calls the function with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}
