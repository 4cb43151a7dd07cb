package main

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

type stubSource struct{}

func (stubSource) Load(ctx context.Context, collection document.Collection) ([]document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []document.Document{{"_id": collection.String() + "-1"}}, nil
}

type recordingSink struct {
	mu       sync.Mutex
	imported map[document.Collection]int
}

func (s *recordingSink) Import(ctx context.Context, collection document.Collection, docs []document.Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imported == nil {
		s.imported = make(map[document.Collection]int)
	}
	s.imported[collection] = len(docs)
	return len(docs), nil
}

func messages(hook *logtest.Hook) []string {
	var out []string
	for _, entry := range hook.AllEntries() {
		out = append(out, entry.Message)
	}
	return out
}

func Test_importCollections(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	sink := &recordingSink{}

	err := importCollections(context.Background(), stubSource{}, sink, document.Collections(), log)
	require.NoError(t, err)

	assert.Equal(t, map[document.Collection]int{
		document.CandleCollection:   1,
		document.ExchangeCollection: 1,
		document.MetadataCollection: 1,
	}, sink.imported)
	assert.Contains(t, messages(hook), "import finished")
}

func Test_importCollections_Interrupted(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := importCollections(ctx, stubSource{}, sink, document.Collections(), log)
	require.ErrorIs(t, err, context.Canceled)

	assert.Empty(t, sink.imported)
	assert.NotContains(t, messages(hook), "import finished")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "import interrupted", hook.LastEntry().Message)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
