package iobatch_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gnames/gn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theskyentist/gelato/internal/iobatch"
	"github.com/theskyentist/gelato/internal/iometrics"
	"github.com/theskyentist/gelato/pkg/config"
	"github.com/theskyentist/gelato/pkg/emission"
	"github.com/theskyentist/gelato/pkg/errcode"
	"github.com/theskyentist/gelato/pkg/schema"
)

// memStore keeps results in memory.
type memStore struct {
	mu      sync.Mutex
	runs    []*schema.Run
	results map[string]*schema.Result
}

func newMemStore() *memStore {
	return &memStore{results: make(map[string]*schema.Result)}
}

func (s *memStore) Init(context.Context) error { return nil }
func (s *memStore) Close() error { return nil }

func (s *memStore) SaveRun(_ context.Context, run *schema.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s *memStore) Save(_ context.Context, res *schema.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.Spectrum.ID] = res
	return nil
}

func hierarchy() *emission.Hierarchy {
	return &emission.Hierarchy{
		Version: "v0.2.0",
		Groups: []emission.Group{
			{
				Name:        "AGN",
				TieRedshift: true,
				Species: []emission.Species{
					{Name: "[OIII]", Lines: []emission.Line{
						{Wavelength: 5008.24, RelStrength: emission.Ratio(1)},
						{Wavelength: 4960.30, RelStrength: emission.Ratio(0.35)},
					}},
				},
			},
		},
	}
}

func TestReadList(t *testing.T) {
	assert := assert.New(t)
	items, err := iobatch.ReadList(filepath.Join("testdata", "list.txt"))
	require.Nil(t, err)
	require.Len(t, items, 3)
	assert.Equal(filepath.Join("testdata", "spectrum.txt"), items[0].Path)
	assert.Equal(0.01, items[0].Redshift)
	assert.Equal(0.0105, items[1].Redshift)

	_, err = iobatch.ReadList(filepath.Join("testdata", "bad_list.txt"))
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.BatchListError, gnErr.Code)

	_, err = iobatch.ReadList(filepath.Join("testdata", "none.txt"))
	assert.Error(err)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)
	items, err := iobatch.ReadList(filepath.Join("testdata", "list.txt"))
	require.Nil(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptJobsNumber(2),
		config.OptMetricsFile(filepath.Join(t.TempDir(), "gelato.prom")),
	})
	st := newMemStore()
	m := iometrics.New()
	b := iobatch.New(cfg, st, iobatch.OptMetrics(m), iobatch.OptQuiet(true))

	rep, err := b.Run(context.Background(), hierarchy(), "params.yaml", items)
	require.Nil(t, err)
	assert.Equal(3, rep.Total)
	assert.Equal(2, rep.Built)
	assert.Equal(1, rep.Failed)

	require.Len(t, st.runs, 1)
	assert.Equal(rep.RunID, st.runs[0].ID)
	assert.Equal("v0.2.0", st.runs[0].ParamsVersion)

	// both items use the same file, so they share the spectrum ID.
	assert.Len(st.results, 1)
	id := schema.SpectrumID(rep.RunID, items[0].Path)
	res, ok := st.results[id]
	require.True(t, ok)
	assert.Equal(len(res.Parameters), res.Spectrum.Params)

	n, err := testutil.GatherAndCount(
		m.Registry(), "gelato_models_built_total", "gelato_models_failed_total",
	)
	require.Nil(t, err)
	assert.Equal(2, n)
}

func TestRunAllFailed(t *testing.T) {
	cfg := config.New()
	items := []iobatch.Item{{Path: filepath.Join("testdata", "missing.txt")}}
	b := iobatch.New(cfg, newMemStore(), iobatch.OptQuiet(true))

	rep, err := b.Run(context.Background(), hierarchy(), "params.yaml", items)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.BatchAllSpectraFailedError, gnErr.Code)
	assert.Equal(t, 1, rep.Failed)
}

func TestRunCancelled(t *testing.T) {
	cfg := config.New()
	items := make([]iobatch.Item, 100)
	for i := range items {
		items[i] = iobatch.Item{
			Path:     filepath.Join("testdata", "spectrum.txt"),
			Redshift: 0.01,
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := iobatch.New(cfg, newMemStore(), iobatch.OptQuiet(true))
	_, err := b.Run(ctx, hierarchy(), "params.yaml", items)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.BatchCancelledError, gnErr.Code)
}
